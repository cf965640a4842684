// Package occupancy infers doorway entry/exit events from a pair of
// ultrasonic distance streams. This package has NO external dependencies
// (no GPIO, MQTT, OS, or time.Sleep); the only inputs are two distance
// samples per tick.
package occupancy

// SensorState classifies one tick of the two doorway sensors.
type SensorState uint8

const (
	Neither SensorState = iota
	Inner
	Outer
	Both
)

// String returns the single-letter symbol used in log output.
func (s SensorState) String() string {
	switch s {
	case Inner:
		return "I"
	case Outer:
		return "O"
	case Both:
		return "B"
	default:
		return "N"
	}
}

// Classify thresholds a distance pair into a SensorState. A sensor is
// triggered when its sample is non-negative (an echo was heard) and closer
// than the trigger distance. Negative samples are the no-echo sentinel and
// always count as untriggered.
func Classify(inner, outer, trigger float64) SensorState {
	innerHit := inner >= 0 && inner < trigger
	outerHit := outer >= 0 && outer < trigger
	switch {
	case innerHit && outerHit:
		return Both
	case innerHit:
		return Inner
	case outerHit:
		return Outer
	default:
		return Neither
	}
}

// Counts tracks classification outcomes since startup.
type Counts struct {
	Entries   int
	Exits     int
	Discarded int
}
