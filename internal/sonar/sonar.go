// Package sonar reads HC-SR04 style ultrasonic rangers with hardware
// abstraction. The real implementation uses the Linux GPIO character device;
// the fake implementation allows testing without hardware.
package sonar

// NoEcho is returned when no echo arrives within the timeout. Downstream
// code treats it as "nothing in range".
const NoEcho = -1.0

// Default BCM pin assignments for the doorway pair.
const (
	DefaultTrigInner = 23
	DefaultEchoInner = 24
	DefaultTrigOuter = 25
	DefaultEchoOuter = 8
)

// Ranger measures one distance in centimeters. A timed-out echo yields
// NoEcho with a nil error; errors are reserved for GPIO failures.
type Ranger interface {
	Read() (float64, error)

	// Close releases GPIO resources.
	Close() error
}

// PairReader reads the inner and outer doorway rangers, one sample each.
type PairReader interface {
	Read() (inner, outer float64, err error)
	Close() error
}

// Pair bundles the two doorway rangers into a PairReader. The inner sensor
// faces into the room, the outer sensor faces the hallway.
type Pair struct {
	Inner Ranger
	Outer Ranger
}

// Read takes one fresh sample from each ranger, inner first.
func (p Pair) Read() (float64, float64, error) {
	inner, err := p.Inner.Read()
	if err != nil {
		return 0, 0, err
	}
	outer, err := p.Outer.Read()
	if err != nil {
		return 0, 0, err
	}
	return inner, outer, nil
}

// Close closes both rangers, returning the first error.
func (p Pair) Close() error {
	errInner := p.Inner.Close()
	errOuter := p.Outer.Close()
	if errInner != nil {
		return errInner
	}
	return errOuter
}
