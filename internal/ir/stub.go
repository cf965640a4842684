//go:build !linux

package ir

import "errors"

// Blaster is not available on non-Linux platforms.
type Blaster struct{}

// NewBlaster returns an error on non-Linux platforms.
func NewBlaster(pin int) (*Blaster, error) {
	return nil, errors.New("ir: not supported on this platform (requires Linux)")
}

// Transmit is not implemented on non-Linux platforms.
func (b *Blaster) Transmit(t Table) error {
	return errors.New("ir: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *Blaster) Close() error {
	return nil
}
