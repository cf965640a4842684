// Package status provides a thread-safe status tracker for the ac-node
// daemon. It is read by the HTTP handlers and serialized into MQTT system
// events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/ac-node/internal/occupancy"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	VacancyMs   int64
	Broker      string
	Prefix      string
	HTTPAddr    string
	BaselineCm  float64
	MarginCm    float64
}

// ACState mirrors what the node believes the air conditioner is doing.
// Mode is empty until the first mode command is seen.
type ACState struct {
	Power      bool
	Mode       string
	TargetTemp int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Occupancy     int
	PrevOccupancy int
	AC            ACState
	RoomTempC     float64
	RoomTempValid bool
	AutoOffAt     time.Time
	AutoOffActive bool
	Counts        occupancy.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetOccupancy records the current and previous occupancy counts.
func (t *Tracker) SetOccupancy(current, previous int) {
	t.mu.Lock()
	t.snap.Occupancy = current
	t.snap.PrevOccupancy = previous
	t.mu.Unlock()
}

// SetAC records what the node believes the AC is doing.
func (t *Tracker) SetAC(state ACState) {
	t.mu.Lock()
	t.snap.AC = state
	t.mu.Unlock()
}

// SetRoomTemp records the latest successful temperature reading.
func (t *Tracker) SetRoomTemp(celsius float64) {
	t.mu.Lock()
	t.snap.RoomTempC = celsius
	t.snap.RoomTempValid = true
	t.mu.Unlock()
}

// SetAutoOff records the pending vacancy auto-off deadline, if any.
func (t *Tracker) SetAutoOff(at time.Time, active bool) {
	t.mu.Lock()
	t.snap.AutoOffAt = at
	t.snap.AutoOffActive = active
	t.mu.Unlock()
}

// SetCounts records the engine's classification counters.
// Called from runLoop on every tick.
func (t *Tracker) SetCounts(counts occupancy.Counts) {
	t.mu.Lock()
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetConfig replaces the displayed config after a live reload.
func (t *Tracker) SetConfig(cfg Config) {
	t.mu.Lock()
	t.snap.Config = cfg
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
