package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/ac-node/internal/status"
)

func startTestServer(t *testing.T) (*status.Tracker, string, func()) {
	t.Helper()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     250,
		Broker:     "tcp://broker:1883",
		Prefix:     "acnode",
		BaselineCm: 120,
		MarginCm:   30,
	})
	srv := New(":0", tracker)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go srv.Serve(ln)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
	return tracker, "http://" + ln.Addr().String(), cleanup
}

func TestIndexHTML(t *testing.T) {
	tracker, base, cleanup := startTestServer(t)
	defer cleanup()

	tracker.SetOccupancy(2, 1)
	tracker.SetAC(status.ACState{Power: true, Mode: "quiet", TargetTemp: 21})
	tracker.SetRoomTemp(23.5)

	resp, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	for _, want := range []string{"AC Node", "quiet", "21", "23.5"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexJSON(t *testing.T) {
	tracker, base, cleanup := startTestServer(t)
	defer cleanup()

	tracker.SetOccupancy(1, 0)
	tracker.SetMQTTConnected(true)

	resp, err := http.Get(base + "/index.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var decoded status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.Occupancy != 1 {
		t.Errorf("occupancy = %d, want 1", decoded.Status.Occupancy)
	}
	if !decoded.Status.MQTT.Connected {
		t.Error("mqtt should report connected")
	}
}

func TestNotFound(t *testing.T) {
	_, base, cleanup := startTestServer(t)
	defer cleanup()

	resp, err := http.Get(base + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
