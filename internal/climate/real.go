//go:build linux

package climate

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pulse widths above this split a DHT11 data bit into 0 or 1.
const bitThreshold = 50 * time.Microsecond

// readTimeout caps one full 40-bit transfer.
const readTimeout = 100 * time.Millisecond

// ErrChecksum is returned when the transfer completed but the checksum
// byte did not match. Callers usually just retry on the next cycle.
var ErrChecksum = errors.New("climate: checksum mismatch")

// RealSensor reads a DHT11 on actual hardware. The protocol is single-wire:
// the host holds the line low for 18 ms, then the sensor answers with 40
// bits encoded in high-pulse widths.
type RealSensor struct {
	pin  int
	chip *gpiocdev.Chip

	mu    sync.Mutex
	falls []time.Duration // falling-edge timestamps of the current transfer
	rises []time.Duration
}

// NewRealSensor opens the sensor on the given BCM pin.
func NewRealSensor(pin int) (*RealSensor, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &RealSensor{pin: pin, chip: chip}, nil
}

// Read performs one DHT11 transfer and returns the temperature.
func (s *RealSensor) Read() (float64, error) {
	// Host start signal: hold low 18 ms, then release.
	out, err := s.chip.RequestLine(s.pin, gpiocdev.AsOutput(0))
	if err != nil {
		return 0, fmt.Errorf("request data pin %d: %w", s.pin, err)
	}
	time.Sleep(18 * time.Millisecond)
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("release data pin: %w", err)
	}

	s.mu.Lock()
	s.falls = s.falls[:0]
	s.rises = s.rises[:0]
	s.mu.Unlock()

	in, err := s.chip.RequestLine(s.pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(s.handleEdge))
	if err != nil {
		return 0, fmt.Errorf("request data pin %d: %w", s.pin, err)
	}
	defer in.Close()

	time.Sleep(readTimeout)
	return s.decode()
}

func (s *RealSensor) handleEdge(evt gpiocdev.LineEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if evt.Type == gpiocdev.LineEventRisingEdge {
		s.rises = append(s.rises, evt.Timestamp)
	} else {
		s.falls = append(s.falls, evt.Timestamp)
	}
}

// decode turns the recorded edges into 40 bits and verifies the checksum.
func (s *RealSensor) decode() (float64, error) {
	s.mu.Lock()
	rises := append([]time.Duration(nil), s.rises...)
	falls := append([]time.Duration(nil), s.falls...)
	s.mu.Unlock()

	// Each bit is one high pulse: rise to the next fall. The sensor's
	// 80 µs presence pulse comes first; the final 40 pulses are data.
	n := len(rises)
	if len(falls) < n {
		n = len(falls)
	}
	var widths []time.Duration
	for i := 0; i < n; i++ {
		if falls[i] > rises[i] {
			widths = append(widths, falls[i]-rises[i])
		}
	}
	if len(widths) < 40 {
		return 0, fmt.Errorf("climate: short transfer, %d pulses", len(widths))
	}
	widths = widths[len(widths)-40:]

	var data [5]byte
	for i, w := range widths {
		data[i/8] <<= 1
		if w > bitThreshold {
			data[i/8] |= 1
		}
	}

	if data[0]+data[1]+data[2]+data[3] != data[4] {
		return 0, ErrChecksum
	}

	// DHT11: byte 2 integral temperature, byte 3 tenths.
	return float64(data[2]) + float64(data[3])/10, nil
}

// Close releases the chip.
func (s *RealSensor) Close() error {
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			return fmt.Errorf("close chip: %w", err)
		}
	}
	return nil
}
