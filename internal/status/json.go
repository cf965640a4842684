package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Occupancy     int         `json:"occupancy"`
	PrevOccupancy int         `json:"prev_occupancy"`
	AC            ACJSON      `json:"ac"`
	RoomTempC     *float64    `json:"room_temp_c,omitempty"`
	AutoOffAt     string      `json:"auto_off_at,omitempty"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Counts        CountsJSON  `json:"event_counts"`
	Config        ConfigJSON  `json:"config"`
}

// ACJSON is the JSON representation of the believed AC state.
type ACJSON struct {
	Power      string `json:"power"`
	Mode       string `json:"mode"`
	TargetTemp int    `json:"target_temp"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of the occupancy engine counters.
type CountsJSON struct {
	Entries   int `json:"entries"`
	Exits     int `json:"exits"`
	Discarded int `json:"discarded"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64   `json:"poll_ms"`
	HeartbeatMs int64   `json:"heartbeat_ms"`
	VacancyMs   int64   `json:"vacancy_ms"`
	Broker      string  `json:"broker"`
	Prefix      string  `json:"prefix"`
	HTTPAddr    string  `json:"http_addr"`
	BaselineCm  float64 `json:"baseline_cm"`
	MarginCm    float64 `json:"margin_cm"`
}

func buildInner(snap Snapshot) StatusInner {
	power := "off"
	if snap.AC.Power {
		power = "on"
	}
	mode := snap.AC.Mode
	if mode == "" {
		mode = "unknown"
	}

	inner := StatusInner{
		Occupancy:     snap.Occupancy,
		PrevOccupancy: snap.PrevOccupancy,
		AC: ACJSON{
			Power:      power,
			Mode:       mode,
			TargetTemp: snap.AC.TargetTemp,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Entries:   snap.Counts.Entries,
			Exits:     snap.Counts.Exits,
			Discarded: snap.Counts.Discarded,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			VacancyMs:   snap.Config.VacancyMs,
			Broker:      snap.Config.Broker,
			Prefix:      snap.Config.Prefix,
			HTTPAddr:    snap.Config.HTTPAddr,
			BaselineCm:  snap.Config.BaselineCm,
			MarginCm:    snap.Config.MarginCm,
		},
	}

	if snap.RoomTempValid {
		temp := snap.RoomTempC
		inner.RoomTempC = &temp
	}
	if snap.AutoOffActive {
		inner.AutoOffAt = snap.AutoOffAt.UTC().Format(time.RFC3339)
	}

	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
