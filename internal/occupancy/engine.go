package occupancy

// windowState distinguishes an idle engine from one accumulating an event
// window. The window slice is only non-empty while in progress.
type windowState uint8

const (
	windowIdle windowState = iota
	windowInProgress
)

// Engine converts per-tick distance pairs into signed occupancy deltas.
// It owns the rolling state sequence for the current event window and
// nothing else; callers keep the running occupancy total.
//
// Not safe for concurrent use — Observe must be serialized.
type Engine struct {
	trigger float64
	state   windowState
	window  []SensorState
	counts  Counts
}

// NewEngine creates an engine that considers a sensor triggered below
// (baseline - margin) centimeters.
func NewEngine(baseline, margin float64) *Engine {
	return &Engine{trigger: baseline - margin}
}

// Observe takes one fresh distance pair and returns the occupancy delta for
// this tick: +1 entry, -1 exit, 0 otherwise. The engine resets itself after
// every completed window, whether or not it produced a delta.
func (e *Engine) Observe(inner, outer float64) int {
	s := Classify(inner, outer, e.trigger)

	if e.state == windowIdle {
		if s == Neither {
			// Idle doorway; don't accumulate an endless run of N.
			return 0
		}
		// Window opens with the implicit leading Neither boundary.
		e.state = windowInProgress
		e.window = append(e.window[:0], Neither, s)
		return 0
	}

	e.window = append(e.window, s)
	if s != Neither {
		return 0
	}

	// Returned to Neither after leaving it: the window is complete.
	delta := classifyWindow(e.window)
	e.reset()
	switch delta {
	case 1:
		e.counts.Entries++
	case -1:
		e.counts.Exits++
	default:
		e.counts.Discarded++
	}
	return delta
}

// classifyWindow decides direction from the order in which each sensor was
// first triggered. Oscillation between I/O/B inside the window is expected
// from a real traversal and does not affect the verdict; only the first
// occurrence of each plain symbol matters. A window that never saw both
// sensors is noise.
func classifyWindow(window []SensorState) int {
	firstInner, firstOuter := -1, -1
	for i, s := range window {
		if s == Inner && firstInner < 0 {
			firstInner = i
		}
		if s == Outer && firstOuter < 0 {
			firstOuter = i
		}
	}

	if firstInner < 0 || firstOuter < 0 {
		return 0
	}
	if firstInner < firstOuter {
		return 1
	}
	return -1
}

func (e *Engine) reset() {
	e.state = windowIdle
	e.window = e.window[:0]
}

// InProgress reports whether an event window is currently open.
func (e *Engine) InProgress() bool {
	return e.state == windowInProgress
}

// CountsSnapshot returns a copy of the classification counters.
func (e *Engine) CountsSnapshot() Counts {
	return e.counts
}
