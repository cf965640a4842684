//go:build linux

package sonar

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// speedOfSoundCmS is the speed of sound in cm/s at room temperature.
const speedOfSoundCmS = 34300.0

// RealRanger drives one HC-SR04 on actual hardware: a 10 µs trigger pulse,
// then the echo line goes high for the round-trip time of the pulse.
type RealRanger struct {
	chip    *gpiocdev.Chip
	trig    *gpiocdev.Line
	echo    *gpiocdev.Line
	events  chan gpiocdev.LineEvent
	timeout time.Duration
}

// NewRealRanger opens the trigger and echo lines on the given BCM pins.
// The timeout caps how long Read waits for each echo edge.
func NewRealRanger(trigPin, echoPin int, timeout time.Duration) (*RealRanger, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	trig, err := chip.RequestLine(trigPin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request trigger pin %d: %w", trigPin, err)
	}

	r := &RealRanger{
		chip:    chip,
		trig:    trig,
		timeout: timeout,
		events:  make(chan gpiocdev.LineEvent, 4),
	}

	echo, err := chip.RequestLine(echoPin,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(r.handleEdge))
	if err != nil {
		trig.Close()
		chip.Close()
		return nil, fmt.Errorf("request echo pin %d: %w", echoPin, err)
	}
	r.echo = echo

	return r, nil
}

func (r *RealRanger) handleEdge(evt gpiocdev.LineEvent) {
	select {
	case r.events <- evt:
	default:
		// Reader is behind; stale edges are useless anyway.
	}
}

// Read fires one trigger pulse and times the echo. Returns the distance in
// centimeters, or NoEcho if either edge fails to arrive within the timeout.
func (r *RealRanger) Read() (float64, error) {
	// Discard edges left over from a previous measurement.
	for {
		select {
		case <-r.events:
			continue
		default:
		}
		break
	}

	if err := r.trig.SetValue(1); err != nil {
		return 0, fmt.Errorf("trigger high: %w", err)
	}
	time.Sleep(10 * time.Microsecond)
	if err := r.trig.SetValue(0); err != nil {
		return 0, fmt.Errorf("trigger low: %w", err)
	}

	rise, ok := r.waitEdge(gpiocdev.LineEventRisingEdge)
	if !ok {
		return NoEcho, nil
	}
	fall, ok := r.waitEdge(gpiocdev.LineEventFallingEdge)
	if !ok {
		return NoEcho, nil
	}

	flight := fall.Timestamp - rise.Timestamp
	return flight.Seconds() * speedOfSoundCmS / 2, nil
}

func (r *RealRanger) waitEdge(want gpiocdev.LineEventType) (gpiocdev.LineEvent, bool) {
	deadline := time.NewTimer(r.timeout)
	defer deadline.Stop()
	for {
		select {
		case evt := <-r.events:
			if evt.Type == want {
				return evt, true
			}
		case <-deadline.C:
			return gpiocdev.LineEvent{}, false
		}
	}
}

// Close releases both lines.
func (r *RealRanger) Close() error {
	var errs []error
	if r.trig != nil {
		if err := r.trig.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close trigger: %w", err))
		}
	}
	if r.echo != nil {
		if err := r.echo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close echo: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
