package logic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonitor(t *testing.T) {
	m := NewMonitor()
	require.NotNil(t, m)
	assert.Equal(t, StateNormal, m.State())
	assert.False(t, m.Active())
	assert.False(t, m.ShouldNotify())
}

func TestEvaluateTransitions(t *testing.T) {
	const (
		threshold  = 1500.0
		hysteresis = 100.0
	)

	tests := []struct {
		name      string
		start     AlarmState
		value     float64
		wantState AlarmState
		wantTrans Transition
	}{
		{"normal stays below threshold", StateNormal, 1499, StateNormal, TransitionNone},
		{"normal activates at threshold", StateNormal, 1500, StateActive, TransitionActivated},
		{"normal activates above threshold", StateNormal, 4095, StateActive, TransitionActivated},
		{"active holds above threshold", StateActive, 1600, StateActive, TransitionNone},
		{"active holds in dead band", StateActive, 1450, StateActive, TransitionNone},
		{"active holds at clear boundary", StateActive, 1400, StateActive, TransitionNone},
		{"active clears below dead band", StateActive, 1399, StateNormal, TransitionCleared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Monitor{state: tt.start}
			got := m.Evaluate(tt.value, threshold, hysteresis)
			assert.Equal(t, tt.wantTrans, got)
			assert.Equal(t, tt.wantState, m.State())
		})
	}
}

// TestEvaluateSequence feeds a realistic raw-value sequence through a full
// alarm episode. With threshold 1500 and hysteresis 100 the clear point is
// 1400, so mid-band values must not clear the alarm.
func TestEvaluateSequence(t *testing.T) {
	m := NewMonitor()

	seq := []struct {
		value float64
		want  AlarmState
	}{
		{1000, StateNormal},
		{1500, StateActive},
		{1600, StateActive},
		{1450, StateActive}, // dead band: 1400 <= v < 1500
		{1410, StateActive}, // still at or above the 1400 clear point
		{1300, StateNormal}, // below 1500-100, clears
	}

	for i, s := range seq {
		m.Evaluate(s.value, 1500, 100)
		assert.Equalf(t, s.want, m.State(), "step %d (value=%v)", i, s.value)
	}
}

func TestThresholdUpdateAppliesNextEvaluation(t *testing.T) {
	m := NewMonitor()

	assert.Equal(t, TransitionNone, m.Evaluate(1800, 2000, 100))
	assert.Equal(t, StateNormal, m.State())

	// Same value trips after the threshold is lowered.
	assert.Equal(t, TransitionActivated, m.Evaluate(1800, 1500, 100))
	assert.Equal(t, StateActive, m.State())

	// Raising the threshold mid-episode does not clear until the value drops
	// below new threshold - hysteresis.
	assert.Equal(t, TransitionNone, m.Evaluate(1950, 2000, 100))
	assert.Equal(t, StateActive, m.State())
	assert.Equal(t, TransitionCleared, m.Evaluate(1800, 2000, 100))
}

func TestNotifiedLifecycle(t *testing.T) {
	m := NewMonitor()
	assert.False(t, m.ShouldNotify(), "normal state owes no notification")

	m.Evaluate(1600, 1500, 100)
	require.True(t, m.Active())
	assert.True(t, m.ShouldNotify(), "new episode owes a notification")

	// A failed send leaves ShouldNotify true on following ticks.
	m.Evaluate(1650, 1500, 100)
	assert.True(t, m.ShouldNotify())

	m.MarkNotified()
	assert.False(t, m.ShouldNotify(), "exactly one success per episode")

	m.Evaluate(1700, 1500, 100)
	assert.False(t, m.ShouldNotify(), "still notified while episode continues")

	// Clearing resets the flag for the next episode.
	m.Evaluate(1000, 1500, 100)
	require.False(t, m.Active())
	assert.False(t, m.ShouldNotify())

	m.Evaluate(1600, 1500, 100)
	assert.True(t, m.ShouldNotify(), "next episode owes one more notification")
}

func TestBuzzerActiveTruthTable(t *testing.T) {
	for i := 0; i < 16; i++ {
		gas := i&1 != 0
		temp := i&2 != 0
		enabled := i&4 != 0
		silence := i&8 != 0

		want := (gas || temp) && enabled && !silence
		got := BuzzerActive(gas, temp, Overrides{BuzzerEnabled: enabled, ManualSilence: silence})
		assert.Equalf(t, want, got, "gas=%v temp=%v enabled=%v silence=%v", gas, temp, enabled, silence)
	}
}

func TestDefaultOverrides(t *testing.T) {
	o := DefaultOverrides()
	assert.True(t, o.BuzzerEnabled)
	assert.False(t, o.ManualSilence)
}

func TestEventConstructors(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	ev := NewGasAlarm(1600, 1500, ts)
	assert.Equal(t, EventGasAlarm, ev.Kind)
	assert.Equal(t, ts, ev.Timestamp)
	assert.Contains(t, ev.Message, "1600")
	assert.Contains(t, ev.Message, "1500")

	ev = NewGasClear(1200, 1500, ts)
	assert.Equal(t, EventGasClear, ev.Kind)
	assert.Contains(t, ev.Message, "1200")

	ev = NewTempAlarm(36.5, 35.0, ts)
	assert.Equal(t, EventTempAlarm, ev.Kind)
	assert.Contains(t, ev.Message, "36.5")
	assert.Contains(t, ev.Message, "35.0")

	ev = NewTempClear(33.2, 35.0, ts)
	assert.Equal(t, EventTempClear, ev.Kind)
	assert.Contains(t, ev.Message, "33.2")
}
