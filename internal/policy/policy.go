// Package policy holds the smart AC rules: mode follows occupancy, and an
// empty room switches the AC off after a grace period. This package has NO
// external dependencies; time is always injected via the Input.
package policy

import (
	"fmt"
	"strconv"
	"time"
)

// Action is one step the loop should take: press an IR button (Command set)
// or just emit a log notice (Command empty). Reason is always set.
type Action struct {
	Command  string // "power", "mode" or "temp"; empty for notice-only
	Argument string
	Reason   string
}

// Input is the loop state the rules evaluate against, one call per tick.
type Input struct {
	Power       bool
	PowerOnTick bool // power was switched on this tick
	Mode        string
	TargetTemp  int
	Occupancy   int
	Time        time.Time
}

// Controller evaluates the rules and owns the vacancy timer.
//
// Not safe for concurrent use — Evaluate must be serialized.
type Controller struct {
	vacancyTimeout time.Duration
	timerActive    bool
	deadline       time.Time
}

// NewController creates a controller with the given vacancy timeout.
// A timeout <= 0 disables the auto-off rule.
func NewController(vacancyTimeout time.Duration) *Controller {
	return &Controller{vacancyTimeout: vacancyTimeout}
}

// Evaluate applies the rules to one tick of loop state. The caller must
// apply the returned actions to its own state (mode, power) before the
// next call, or the same actions will fire again.
func (c *Controller) Evaluate(in Input) []Action {
	var actions []Action

	// Fresh power-on: cool hard until the target is reached, regardless of
	// who is in the room yet.
	if in.PowerOnTick {
		actions = append(actions,
			Action{Command: "mode", Argument: "super", Reason: "powered on; forcing super mode"},
			Action{Command: "temp", Argument: strconv.Itoa(in.TargetTemp),
				Reason: fmt.Sprintf("powered on; resending target %d", in.TargetTemp)},
		)
	}

	if !in.Power {
		if c.timerActive {
			c.timerActive = false
			actions = append(actions, Action{Reason: "powered off; shutdown timer cancelled"})
		}
		return actions
	}

	// Someone is home: keep the AC quiet.
	if in.Occupancy > 0 && !in.PowerOnTick && in.Mode != "quiet" {
		actions = append(actions, Action{Command: "mode", Argument: "quiet",
			Reason: "room occupied; switching to quiet mode"})
	}

	switch {
	case in.Occupancy > 0 && c.timerActive:
		c.timerActive = false
		actions = append(actions, Action{Reason: "room reoccupied; shutdown timer cancelled"})

	case in.Occupancy == 0 && !c.timerActive && c.vacancyTimeout > 0:
		c.timerActive = true
		c.deadline = in.Time.Add(c.vacancyTimeout)
		actions = append(actions, Action{Reason: fmt.Sprintf(
			"room unoccupied; will power off at %s unless reoccupied",
			c.deadline.Format("15:04:05"))})

	case c.timerActive && in.Time.After(c.deadline):
		c.timerActive = false
		actions = append(actions, Action{Command: "power", Argument: "off",
			Reason: "vacancy timeout expired; powering off"})
	}

	return actions
}

// Deadline reports the pending auto-off time, if a timer is running.
func (c *Controller) Deadline() (time.Time, bool) {
	return c.deadline, c.timerActive
}
