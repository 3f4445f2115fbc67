// Package status provides a thread-safe status tracker for the gas-monitor
// daemon. The control loop writes it every tick; HTTP handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/gas-monitor/internal/logic"
	"github.com/sweeney/gas-monitor/internal/sensor"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	PublishMs  int64
	ClimateMs  int64
	WarmupMs   int64
	Broker     string
	HTTPAddr   string
	NotifyURL  string
	DeviceName string
}

// Counters tracks event totals since startup.
type Counters struct {
	AlarmsRaised      int
	AlarmsCleared     int
	NotificationsSent int
	PublishErrors     int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Gas            sensor.GasReading
	Climate        sensor.ClimateReading
	GasAlarm       logic.AlarmState
	TempAlarm      logic.AlarmState
	Overrides      logic.Overrides
	GasThreshold   int
	GasHysteresis  int
	TempThreshold  float64
	TempHysteresis float64
	Ready          bool // warm-up finished
	MQTTConnected  bool
	Counters       Counters
	StartTime      time.Time
	Now            time.Time
	Config         Config
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
			GasAlarm:  logic.StateNormal,
			TempAlarm: logic.StateNormal,
			Overrides: logic.DefaultOverrides(),
			Config:    cfg,
		},
	}
}

// Update sets readings, alarm states, overrides, and thresholds.
// Called from the control loop on every tick.
func (t *Tracker) Update(gas sensor.GasReading, climate sensor.ClimateReading,
	gasAlarm, tempAlarm logic.AlarmState, o logic.Overrides,
	gasThreshold, gasHysteresis int, tempThreshold, tempHysteresis float64, ready bool) {
	t.mu.Lock()
	t.snap.Gas = gas
	t.snap.Climate = climate
	t.snap.GasAlarm = gasAlarm
	t.snap.TempAlarm = tempAlarm
	t.snap.Overrides = o
	t.snap.GasThreshold = gasThreshold
	t.snap.GasHysteresis = gasHysteresis
	t.snap.TempThreshold = tempThreshold
	t.snap.TempHysteresis = tempHysteresis
	t.snap.Ready = ready
	t.mu.Unlock()
}

// SetMQTTConnected sets the broker connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetCounters replaces the event counters.
func (t *Tracker) SetCounters(c Counters) {
	t.mu.Lock()
	t.snap.Counters = c
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
