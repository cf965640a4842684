// Package mqtt carries the node's coordinator traffic with abstraction for
// testing: inbound command/request messages are queued and drained one per
// tick, outbound notices are fire-and-forget publishes.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Message is one inbound (topic, payload) pair.
type Message struct {
	Topic   string
	Payload string
}

// Topics derives every topic the node consumes or produces from the
// configured prefix.
type Topics struct {
	Prefix string
}

// CommandFilter matches all inbound command topics.
func (t Topics) CommandFilter() string { return t.Prefix + "/command/+" }

// RequestFilter matches all inbound request topics.
func (t Topics) RequestFilter() string { return t.Prefix + "/request/+" }

// OccupancyNotice carries signed occupancy deltas.
func (t Topics) OccupancyNotice() string { return t.Prefix + "/notice/occ_change" }

// TemperatureNotice carries room temperature readings.
func (t Topics) TemperatureNotice() string { return t.Prefix + "/notice/temp" }

// LogNotice carries free-text observability messages.
func (t Topics) LogNotice() string { return t.Prefix + "/notice/log" }

// SystemNotice carries retained lifecycle events (STARTUP, SHUTDOWN,
// HEARTBEAT) with full status snapshots.
func (t Topics) SystemNotice() string { return t.Prefix + "/notice/system" }

// Online is the availability topic, also used for the LWT.
func (t Topics) Online() string { return t.Prefix + "/online" }

// Messenger is the node's view of the broker.
type Messenger interface {
	// Poll returns the oldest pending inbound message, if any. It never
	// blocks; the loop drains at most one message per tick.
	Poll() (Message, bool)

	// PublishOccupancy sends a signed occupancy delta notice.
	PublishOccupancy(delta int) error

	// PublishTemperature sends a room temperature notice.
	PublishTemperature(celsius float64) error

	// PublishLog sends a free-text log notice.
	PublishLog(message string) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// FormatOccupancy renders a delta the way the coordinator expects it:
// always signed, e.g. "+1" or "-1".
func FormatOccupancy(delta int) string {
	return fmt.Sprintf("%+d", delta)
}

// FormatTemperature renders a temperature notice payload.
func FormatTemperature(celsius float64) string {
	return strconv.FormatFloat(celsius, 'f', 1, 64)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
