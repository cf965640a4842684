// Package ir transmits precomputed pulse-timing tables to the air
// conditioner. The real implementation bit-bangs a 38 kHz carrier on a GPIO
// line; the fake implementation records tables for tests.
package ir

import "time"

// CarrierHz is the modulation frequency of the AC's IR receiver.
const CarrierHz = 38000

// DefaultPin is the BCM pin driving the IR LED.
const DefaultPin = 18

// Table is a precomputed remote-control signal: alternating mark/space
// durations starting with a mark. Tables are opaque to the dispatcher;
// transmission is fire-and-forget.
type Table struct {
	Name   string
	Pulses []time.Duration
}

// Transmitter sends one pulse-timing table at the carrier frequency.
type Transmitter interface {
	Transmit(t Table) error

	// Close releases the output line.
	Close() error
}
