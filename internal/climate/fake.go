package climate

import "errors"

// FakeSensor is a test double that returns scripted temperatures.
type FakeSensor struct {
	// Temps contains scripted readings; each Read consumes the next one
	// and the last repeats once exhausted.
	Temps []float64

	// index tracks current position in Temps
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeSensor creates a FakeSensor with the given readings.
func NewFakeSensor(temps ...float64) *FakeSensor {
	return &FakeSensor{Temps: temps}
}

// Read returns the next scripted temperature.
func (f *FakeSensor) Read() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Temps) == 0 {
		return 0, errors.New("no temperatures configured")
	}
	temp := f.Temps[f.index]
	if f.index < len(f.Temps)-1 {
		f.index++
	}
	return temp, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}
