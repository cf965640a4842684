//go:build linux

package ir

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Blaster drives an IR LED on actual hardware using the Linux GPIO
// character device. The carrier is software-generated, which is accurate
// enough for a receiver a few meters away.
type Blaster struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewBlaster opens the IR output line on the given BCM pin.
func NewBlaster(pin int) (*Blaster, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request ir pin %d: %w", pin, err)
	}

	return &Blaster{chip: chip, line: line}, nil
}

// Transmit plays the table: marks are carrier bursts, spaces are silence.
func (b *Blaster) Transmit(t Table) error {
	halfPeriod := time.Second / time.Duration(2*CarrierHz)

	for i, d := range t.Pulses {
		if i%2 == 0 {
			if err := b.carrier(d, halfPeriod); err != nil {
				return fmt.Errorf("transmit %s: %w", t.Name, err)
			}
		} else {
			time.Sleep(d)
		}
	}

	// Leave the LED off no matter how the table ended.
	if err := b.line.SetValue(0); err != nil {
		return fmt.Errorf("transmit %s: idle line: %w", t.Name, err)
	}
	return nil
}

// carrier toggles the line at the carrier frequency for the mark duration.
func (b *Blaster) carrier(mark, halfPeriod time.Duration) error {
	end := time.Now().Add(mark)
	for time.Now().Before(end) {
		if err := b.line.SetValue(1); err != nil {
			return err
		}
		time.Sleep(halfPeriod)
		if err := b.line.SetValue(0); err != nil {
			return err
		}
		time.Sleep(halfPeriod)
	}
	return nil
}

// Close releases the output line, forcing it low first.
func (b *Blaster) Close() error {
	var errs []error
	if b.line != nil {
		if err := b.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("idle ir line: %w", err))
		}
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close ir line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
