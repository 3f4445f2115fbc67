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
	Gas           GasJSON     `json:"gas"`
	Climate       ClimateJSON `json:"climate"`
	Buzzer        BuzzerJSON  `json:"buzzer"`
	Ready         bool        `json:"ready"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Counters      CountsJSON  `json:"counters"`
	Config        ConfigJSON  `json:"config"`
}

// GasJSON is the JSON view of the gas channel.
type GasJSON struct {
	Raw        int     `json:"raw"`
	Voltage    float64 `json:"voltage"`
	Percentage float64 `json:"percentage"`
	Threshold  int     `json:"threshold"`
	Hysteresis int     `json:"hysteresis"`
	Alarm      string  `json:"alarm"`
}

// ClimateJSON is the JSON view of the climate channel.
type ClimateJSON struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Threshold   float64 `json:"threshold"`
	Hysteresis  float64 `json:"hysteresis"`
	Valid       bool    `json:"valid"`
	Alarm       string  `json:"alarm"`
}

// BuzzerJSON is the JSON view of the buzzer overrides.
type BuzzerJSON struct {
	Enabled  bool `json:"enabled"`
	Silenced bool `json:"silenced"`
}

// MQTTStatus reports broker connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counters.
type CountsJSON struct {
	AlarmsRaised      int `json:"alarms_raised"`
	AlarmsCleared     int `json:"alarms_cleared"`
	NotificationsSent int `json:"notifications_sent"`
	PublishErrors     int `json:"publish_errors"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs    int64  `json:"poll_ms"`
	PublishMs int64  `json:"publish_ms"`
	ClimateMs int64  `json:"climate_ms"`
	WarmupMs  int64  `json:"warmup_ms"`
	Broker    string `json:"broker"`
	HTTPAddr  string `json:"http_addr"`
	NotifyURL string `json:"notify_url,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Gas: GasJSON{
			Raw:        snap.Gas.Raw,
			Voltage:    snap.Gas.Voltage,
			Percentage: snap.Gas.Percentage,
			Threshold:  snap.GasThreshold,
			Hysteresis: snap.GasHysteresis,
			Alarm:      string(snap.GasAlarm),
		},
		Climate: ClimateJSON{
			Temperature: snap.Climate.Temperature,
			Humidity:    snap.Climate.Humidity,
			Threshold:   snap.TempThreshold,
			Hysteresis:  snap.TempHysteresis,
			Valid:       snap.Climate.Valid,
			Alarm:       string(snap.TempAlarm),
		},
		Buzzer: BuzzerJSON{
			Enabled:  snap.Overrides.BuzzerEnabled,
			Silenced: snap.Overrides.ManualSilence,
		},
		Ready:         snap.Ready,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counters: CountsJSON{
			AlarmsRaised:      snap.Counters.AlarmsRaised,
			AlarmsCleared:     snap.Counters.AlarmsCleared,
			NotificationsSent: snap.Counters.NotificationsSent,
			PublishErrors:     snap.Counters.PublishErrors,
		},
		Config: ConfigJSON{
			PollMs:    snap.Config.PollMs,
			PublishMs: snap.Config.PublishMs,
			ClimateMs: snap.Config.ClimateMs,
			WarmupMs:  snap.Config.WarmupMs,
			Broker:    snap.Config.Broker,
			HTTPAddr:  snap.Config.HTTPAddr,
			NotifyURL: snap.Config.NotifyURL,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
