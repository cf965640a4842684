// Package climate reads the room temperature sensor with hardware
// abstraction. The real implementation bit-bangs a DHT11 over the Linux
// GPIO character device; the fake implementation allows testing without
// hardware.
package climate

// DefaultPin is the BCM pin of the DHT11 data line.
const DefaultPin = 4

// Sensor reads the room temperature in degrees Celsius.
type Sensor interface {
	Read() (float64, error)

	// Close releases GPIO resources.
	Close() error
}
