// Package mqtt provides broker publishing and command subscription with
// abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/gas-monitor/internal/logic"
	"github.com/sweeney/gas-monitor/internal/sensor"
)

// Topics used by the daemon.
const (
	// TopicGasData carries periodic gas telemetry.
	TopicGasData = "sensor/gas/data"

	// TopicClimateData carries periodic temperature/humidity telemetry.
	TopicClimateData = "sensor/temp/data"

	// TopicAlarmLog carries alarm transition events.
	TopicAlarmLog = "sensor/alarm/log"

	// TopicControl is the inbound buzzer/threshold command topic.
	TopicControl = "sensor/gas/buzzer"
)

// Publisher publishes telemetry and alarm logs to the broker.
// Publishing failures must not crash the process.
type Publisher interface {
	PublishGas(s GasStatus) error
	PublishClimate(s ClimateStatus) error
	PublishAlarm(l AlarmLog) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the broker connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// CommandSource delivers inbound control commands. Poll never blocks, so the
// control loop can drain at most one command per iteration and keep its
// single-threaded ordering.
type CommandSource interface {
	Poll() (Command, bool)
}

// GasStatus is the gas telemetry payload.
type GasStatus struct {
	Raw           int     `json:"raw"`
	Voltage       float64 `json:"voltage"`
	Percentage    float64 `json:"percentage"`
	Threshold     int     `json:"threshold"`
	Alarm         bool    `json:"alarm"`
	BuzzerEnabled bool    `json:"buzzer_enabled"`
	ManualSilence bool    `json:"manual_silence"`
	Timestamp     float64 `json:"timestamp"`
}

// NewGasStatus builds the gas telemetry payload for one publish cycle.
func NewGasStatus(r sensor.GasReading, threshold int, alarm bool, o logic.Overrides, t time.Time) GasStatus {
	return GasStatus{
		Raw:           r.Raw,
		Voltage:       r.Voltage,
		Percentage:    r.Percentage,
		Threshold:     threshold,
		Alarm:         alarm,
		BuzzerEnabled: o.BuzzerEnabled,
		ManualSilence: o.ManualSilence,
		Timestamp:     epoch(t),
	}
}

// ClimateStatus is the temperature/humidity telemetry payload.
type ClimateStatus struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	TempThreshold float64 `json:"temp_threshold"`
	Alarm         bool    `json:"alarm"`
	Valid         bool    `json:"valid"`
	Timestamp     float64 `json:"timestamp"`
}

// NewClimateStatus builds the climate telemetry payload.
func NewClimateStatus(r sensor.ClimateReading, threshold float64, alarm bool, t time.Time) ClimateStatus {
	return ClimateStatus{
		Temperature:   r.Temperature,
		Humidity:      r.Humidity,
		TempThreshold: threshold,
		Alarm:         alarm,
		Valid:         r.Valid,
		Timestamp:     epoch(t),
	}
}

// AlarmLog is the alarm log payload.
type AlarmLog struct {
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Timestamp float64 `json:"timestamp"`
}

// NewAlarmLog builds an alarm log payload from a logic event.
func NewAlarmLog(ev logic.Event) AlarmLog {
	return AlarmLog{
		Type:      string(ev.Kind),
		Message:   ev.Message,
		Timestamp: epoch(ev.Timestamp),
	}
}

// Marshal serializes a payload for publishing.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// epoch converts a time to fractional Unix seconds, the timestamp format all
// payloads use.
func epoch(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
