package mqtt

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTopics(t *testing.T) {
	topics := Topics{Prefix: "acnode"}

	cases := []struct{ got, want string }{
		{topics.CommandFilter(), "acnode/command/+"},
		{topics.RequestFilter(), "acnode/request/+"},
		{topics.OccupancyNotice(), "acnode/notice/occ_change"},
		{topics.TemperatureNotice(), "acnode/notice/temp"},
		{topics.LogNotice(), "acnode/notice/log"},
		{topics.SystemNotice(), "acnode/notice/system"},
		{topics.Online(), "acnode/online"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestFormatOccupancy(t *testing.T) {
	if got := FormatOccupancy(1); got != "+1" {
		t.Errorf("FormatOccupancy(1) = %q, want +1", got)
	}
	if got := FormatOccupancy(-1); got != "-1" {
		t.Errorf("FormatOccupancy(-1) = %q, want -1", got)
	}
}

func TestFormatTemperature(t *testing.T) {
	if got := FormatTemperature(21.25); got != "21.2" {
		t.Errorf("FormatTemperature(21.25) = %q, want 21.2", got)
	}
	if got := FormatTemperature(19); got != "19.0" {
		t.Errorf("FormatTemperature(19) = %q, want 19.0", got)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded SystemPayload
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.System.Event != "SHUTDOWN" {
		t.Errorf("event = %q, want SHUTDOWN", decoded.System.Event)
	}
	if decoded.System.Reason != "SIGTERM" {
		t.Errorf("reason = %q, want SIGTERM", decoded.System.Reason)
	}
	if decoded.System.Timestamp != "2026-03-15T10:30:00Z" {
		t.Errorf("timestamp = %q", decoded.System.Timestamp)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"custom":true}`)
	payload, err := FormatSystemPayload(SystemEvent{RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("raw payload not passed through: %s", payload)
	}
}

func TestFakeMessengerPoll(t *testing.T) {
	f := NewFakeMessenger()
	f.Inbound = []Message{
		{Topic: "acnode/command/power", Payload: "on"},
		{Topic: "acnode/request/temp", Payload: "0"},
	}

	msg, ok := f.Poll()
	if !ok || msg.Payload != "on" {
		t.Fatalf("first poll = %+v, %v", msg, ok)
	}
	msg, ok = f.Poll()
	if !ok || msg.Topic != "acnode/request/temp" {
		t.Fatalf("second poll = %+v, %v", msg, ok)
	}
	if _, ok := f.Poll(); ok {
		t.Error("exhausted script should report no message")
	}
}

func TestFakeMessengerRecordsNotices(t *testing.T) {
	f := NewFakeMessenger()

	f.PublishOccupancy(1)
	f.PublishOccupancy(-1)
	f.PublishTemperature(22.5)
	f.PublishLog("hello")

	if len(f.Occupancies) != 2 || f.Occupancies[0] != 1 || f.Occupancies[1] != -1 {
		t.Errorf("occupancies = %v", f.Occupancies)
	}
	if len(f.Temperatures) != 1 || f.Temperatures[0] != 22.5 {
		t.Errorf("temperatures = %v", f.Temperatures)
	}
	if len(f.Logs) != 1 || f.Logs[0] != "hello" {
		t.Errorf("logs = %v", f.Logs)
	}
}
