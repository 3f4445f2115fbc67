package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/gas-monitor/internal/logic"
	"github.com/sweeney/gas-monitor/internal/sensor"
)

func TestGasStatusPayload(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 500_000_000, time.UTC)
	reading := sensor.GasReading{Raw: 1600, Voltage: 1.29, Percentage: 39.1, Timestamp: ts}
	o := logic.Overrides{BuzzerEnabled: true, ManualSilence: false}

	s := NewGasStatus(reading, 1500, true, o, ts)
	data, err := Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, float64(1600), got["raw"])
	assert.Equal(t, 1.29, got["voltage"])
	assert.Equal(t, 39.1, got["percentage"])
	assert.Equal(t, float64(1500), got["threshold"])
	assert.Equal(t, true, got["alarm"])
	assert.Equal(t, true, got["buzzer_enabled"])
	assert.Equal(t, false, got["manual_silence"])
	assert.InDelta(t, float64(ts.Unix())+0.5, got["timestamp"], 1e-6)
}

func TestClimateStatusPayload(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	reading := sensor.ClimateReading{Temperature: 36.5, Humidity: 58, Valid: false, Timestamp: ts}

	s := NewClimateStatus(reading, 35.0, true, ts)
	data, err := Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, 36.5, got["temperature"])
	assert.Equal(t, float64(58), got["humidity"])
	assert.Equal(t, 35.0, got["temp_threshold"])
	assert.Equal(t, true, got["alarm"])
	assert.Equal(t, false, got["valid"])
	assert.Equal(t, float64(ts.Unix()), got["timestamp"])
}

func TestAlarmLogPayload(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	ev := logic.NewGasAlarm(1600, 1500, ts)

	l := NewAlarmLog(ev)
	assert.Equal(t, "gas", l.Type)
	assert.Contains(t, l.Message, "1600")
	assert.Equal(t, float64(ts.Unix()), l.Timestamp)

	data, err := Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"gas"`)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantName  string
		wantErr   bool
		wantFloat float64
		hasFloat  bool
	}{
		{"silence", `{"command":"silence"}`, CommandSilence, false, 0, false},
		{"threshold number", `{"command":"set_gas_threshold","value":2000}`, CommandSetGasThreshold, false, 2000, true},
		{"threshold string", `{"command":"set_gas_threshold","value":"2000"}`, CommandSetGasThreshold, false, 2000, true},
		{"temp threshold float", `{"command":"set_temp_threshold","value":36.5}`, CommandSetTempThreshold, false, 36.5, true},
		{"value garbage", `{"command":"set_gas_threshold","value":"warm"}`, CommandSetGasThreshold, false, 0, false},
		{"value object", `{"command":"set_gas_threshold","value":{"x":1}}`, CommandSetGasThreshold, false, 0, false},
		{"value missing", `{"command":"set_gas_threshold"}`, CommandSetGasThreshold, false, 0, false},
		{"unknown command passes parse", `{"command":"dance"}`, "dance", false, 0, false},
		{"missing command field", `{"value":3}`, "", true, 0, false},
		{"not json", `silence please`, "", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, cmd.Name)

			f, ok := cmd.Float()
			assert.Equal(t, tt.hasFloat, ok)
			if tt.hasFloat {
				assert.Equal(t, tt.wantFloat, f)
			}
		})
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	require.NoError(t, f.PublishGas(GasStatus{Raw: 1}))
	require.NoError(t, f.PublishClimate(ClimateStatus{Temperature: 20}))
	require.NoError(t, f.PublishAlarm(AlarmLog{Type: "gas"}))

	assert.Len(t, f.GasStatuses, 1)
	assert.Len(t, f.ClimateStatuses, 1)
	assert.Len(t, f.AlarmLogs, 1)
	assert.True(t, f.IsConnected())

	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}

func TestFakeCommandsPoll(t *testing.T) {
	f := NewFakeCommands(Command{Name: CommandSilence})
	f.Push(Command{Name: CommandReset})

	cmd, ok := f.Poll()
	require.True(t, ok)
	assert.Equal(t, CommandSilence, cmd.Name)

	cmd, ok = f.Poll()
	require.True(t, ok)
	assert.Equal(t, CommandReset, cmd.Name)

	_, ok = f.Poll()
	assert.False(t, ok)
}
