package sonar

import "errors"

// Sample represents one scripted distance pair in centimeters.
type Sample struct {
	Inner float64
	Outer float64
}

// FakePair is a test double that returns scripted distance pairs.
type FakePair struct {
	// Samples contains scripted pairs to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakePair creates a FakePair with the given samples.
func NewFakePair(samples []Sample) *FakePair {
	return &FakePair{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakePair) Read() (float64, float64, error) {
	if f.ReadError != nil {
		return 0, 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.Inner, sample.Outer, nil
}

// Close marks the pair as closed.
func (f *FakePair) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the pair to the beginning of samples.
func (f *FakePair) Reset() {
	f.index = 0
	f.Closed = false
}
