package command

import (
	"fmt"

	"github.com/sweeney/ac-node/internal/climate"
	"github.com/sweeney/ac-node/internal/ir"
)

// Result is the outcome class of one dispatch.
type Result uint8

const (
	Success Result = iota
	InvalidAction
	InvalidArgument
)

// String returns the log spelling of the result.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case InvalidAction:
		return "invalid_action"
	default:
		return "invalid_argument"
	}
}

// EffectKind classifies the device action a dispatch performed.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectIR
	EffectTemperature
)

// Effect describes what a dispatch did, so the caller can publish notices
// and track AC state. The zero value means nothing happened.
type Effect struct {
	Kind    EffectKind
	Action  string // "power", "mode" or "temp" for IR effects
	Arg     string
	Table   string  // name of the transmitted table
	Celsius float64 // EffectTemperature only
	Note    string  // human-readable outcome for the log notice
}

// Dispatcher routes one inbound message to at most one hardware action.
type Dispatcher struct {
	tx     ir.Transmitter
	sensor climate.Sensor
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(tx ir.Transmitter, sensor climate.Sensor) *Dispatcher {
	return &Dispatcher{tx: tx, sensor: sensor}
}

// Dispatch classifies and executes one (topic, payload) message. Exactly
// one IR table is transmitted on a valid command; nothing is transmitted on
// any validation failure.
func (d *Dispatcher) Dispatch(topic, payload string) (Result, Effect) {
	t, ok := ParseTopic(topic)
	if !ok {
		return InvalidAction, Effect{Note: fmt.Sprintf("malformed topic %q ignored", topic)}
	}

	switch t.Category {
	case CategoryRequest:
		return d.dispatchRequest(t, payload)
	case CategoryCommand:
		return d.dispatchCommand(t, payload)
	default:
		return InvalidAction, Effect{Note: fmt.Sprintf("unknown category in topic %q", topic)}
	}
}

func (d *Dispatcher) dispatchRequest(t Topic, payload string) (Result, Effect) {
	if t.Action != "temp" {
		return InvalidAction, Effect{Note: fmt.Sprintf("unknown request %q", t.Action)}
	}

	celsius, err := d.sensor.Read()
	if err != nil {
		// The request was valid; the sensor hiccup is recovered locally
		// and the next request will retry.
		return Success, Effect{Note: fmt.Sprintf("temp request: sensor read failed: %v", err)}
	}
	return Success, Effect{
		Kind:    EffectTemperature,
		Action:  t.Action,
		Celsius: celsius,
		Note:    fmt.Sprintf("temp request: %.1f C", celsius),
	}
}

func (d *Dispatcher) dispatchCommand(t Topic, payload string) (Result, Effect) {
	var (
		table ir.Table
		ok    bool
	)
	switch t.Action {
	case "power":
		table, ok = ir.PowerTable(payload)
	case "mode":
		table, ok = ir.ModeTable(payload)
	case "temp":
		table, ok = ir.TempTable(payload)
	default:
		return InvalidAction, Effect{Note: fmt.Sprintf("unknown command %q", t.Action)}
	}
	if !ok {
		return InvalidArgument, Effect{
			Note: fmt.Sprintf("invalid argument %q for command %q", payload, t.Action),
		}
	}

	eff := Effect{
		Kind:   EffectIR,
		Action: t.Action,
		Arg:    payload,
		Table:  table.Name,
		Note:   fmt.Sprintf("command %s %q: sent %s", t.Action, payload, table.Name),
	}
	if err := d.tx.Transmit(table); err != nil {
		// Fire-and-forget: the command validated, so the outcome is still
		// success, but the failure is worth a notice.
		eff.Note = fmt.Sprintf("command %s %q: transmit %s failed: %v", t.Action, payload, table.Name, err)
	}
	return Success, eff
}
