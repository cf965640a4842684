//go:build !linux

package climate

import "errors"

// RealSensor is not available on non-Linux platforms.
type RealSensor struct{}

// NewRealSensor returns an error on non-Linux platforms.
func NewRealSensor(pin int) (*RealSensor, error) {
	return nil, errors.New("climate: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (s *RealSensor) Read() (float64, error) {
	return 0, errors.New("climate: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealSensor) Close() error {
	return nil
}
