//go:build !linux

package sonar

import (
	"errors"
	"time"
)

// RealRanger is not available on non-Linux platforms.
type RealRanger struct{}

// NewRealRanger returns an error on non-Linux platforms.
func NewRealRanger(trigPin, echoPin int, timeout time.Duration) (*RealRanger, error) {
	return nil, errors.New("sonar: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *RealRanger) Read() (float64, error) {
	return 0, errors.New("sonar: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealRanger) Close() error {
	return nil
}
