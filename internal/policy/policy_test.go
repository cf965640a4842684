package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// commands flattens the IR commands from a slice of actions.
func commands(actions []Action) []string {
	var out []string
	for _, a := range actions {
		if a.Command != "" {
			out = append(out, a.Command+"="+a.Argument)
		}
	}
	return out
}

func TestPowerOnForcesSuperAndTarget(t *testing.T) {
	c := NewController(5 * time.Minute)

	actions := c.Evaluate(Input{
		Power: true, PowerOnTick: true, Mode: "super", TargetTemp: 16,
		Occupancy: 0, Time: t0,
	})

	assert.Equal(t, []string{"mode=super", "temp=16"}, commands(actions))
}

func TestOccupiedRoomGoesQuiet(t *testing.T) {
	c := NewController(5 * time.Minute)

	actions := c.Evaluate(Input{
		Power: true, Mode: "super", TargetTemp: 16, Occupancy: 1, Time: t0,
	})

	assert.Equal(t, []string{"mode=quiet"}, commands(actions))
}

func TestQuietModeIsSticky(t *testing.T) {
	c := NewController(5 * time.Minute)

	actions := c.Evaluate(Input{
		Power: true, Mode: "quiet", TargetTemp: 16, Occupancy: 2, Time: t0,
	})

	assert.Empty(t, commands(actions), "no mode churn while already quiet")
}

func TestVacancyTimerLifecycle(t *testing.T) {
	c := NewController(5 * time.Minute)

	// Tick 1: powered on, empty room. Timer starts, nothing transmitted.
	actions := c.Evaluate(Input{Power: true, Mode: "super", Occupancy: 0, Time: t0})
	assert.Empty(t, commands(actions))
	deadline, active := c.Deadline()
	require.True(t, active)
	assert.Equal(t, t0.Add(5*time.Minute), deadline)

	// Tick 2: still empty, timer not yet expired. No repeat notice.
	actions = c.Evaluate(Input{Power: true, Mode: "super", Occupancy: 0, Time: t0.Add(time.Minute)})
	assert.Empty(t, actions)

	// Tick 3: past the deadline. Power off exactly once.
	actions = c.Evaluate(Input{Power: true, Mode: "super", Occupancy: 0, Time: t0.Add(6 * time.Minute)})
	assert.Equal(t, []string{"power=off"}, commands(actions))
	_, active = c.Deadline()
	assert.False(t, active)
}

func TestReoccupancyCancelsTimer(t *testing.T) {
	c := NewController(5 * time.Minute)

	c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 0, Time: t0})
	_, active := c.Deadline()
	require.True(t, active)

	actions := c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 1, Time: t0.Add(time.Minute)})

	_, active = c.Deadline()
	assert.False(t, active)
	assert.Empty(t, commands(actions), "cancellation is notice-only")
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Reason, "reoccupied")
}

func TestManualPowerOffCancelsTimer(t *testing.T) {
	c := NewController(5 * time.Minute)

	c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 0, Time: t0})
	_, active := c.Deadline()
	require.True(t, active)

	actions := c.Evaluate(Input{Power: false, Occupancy: 0, Time: t0.Add(time.Minute)})

	_, active = c.Deadline()
	assert.False(t, active)
	assert.Empty(t, commands(actions))
}

func TestTimerExpiryAfterCancelRestarts(t *testing.T) {
	c := NewController(5 * time.Minute)

	c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 0, Time: t0})
	c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 1, Time: t0.Add(time.Minute)})

	// Empty again: a fresh timer from now, not the stale deadline.
	c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 0, Time: t0.Add(2 * time.Minute)})
	deadline, active := c.Deadline()
	require.True(t, active)
	assert.Equal(t, t0.Add(7*time.Minute), deadline)
}

func TestDisabledTimeout(t *testing.T) {
	c := NewController(0)

	actions := c.Evaluate(Input{Power: true, Mode: "quiet", Occupancy: 0, Time: t0})

	assert.Empty(t, actions)
	_, active := c.Deadline()
	assert.False(t, active)
}

func TestPowerOffIdle(t *testing.T) {
	c := NewController(5 * time.Minute)

	actions := c.Evaluate(Input{Power: false, Occupancy: 0, Time: t0})

	assert.Empty(t, actions, "nothing to do while powered off")
}
