package logic

// Monitor tracks the alarm state of a single monitored quantity with
// hysteresis and remembers whether the current alarm episode has already
// produced a successful remote notification.
type Monitor struct {
	state    AlarmState
	notified bool
}

// NewMonitor creates a monitor in the Normal state.
func NewMonitor() *Monitor {
	return &Monitor{state: StateNormal}
}

// Evaluate feeds one sampled value into the state machine.
//
// Normal -> Active when value >= threshold. Active -> Normal when
// value < threshold - hysteresis. Any value inside the dead band
// [threshold - hysteresis, threshold) leaves an active alarm unchanged, which
// absorbs sensor noise at the boundary.
//
// Clearing resets the notification flag so the next episode may notify again.
// Thresholds are read on every call, so a runtime threshold update takes
// effect on the next evaluation.
func (m *Monitor) Evaluate(value, threshold, hysteresis float64) Transition {
	switch m.state {
	case StateNormal:
		if value >= threshold {
			m.state = StateActive
			return TransitionActivated
		}
	case StateActive:
		if value < threshold-hysteresis {
			m.state = StateNormal
			m.notified = false
			return TransitionCleared
		}
	}
	return TransitionNone
}

// State returns the current alarm state.
func (m *Monitor) State() AlarmState {
	return m.state
}

// Active reports whether the alarm is currently active.
func (m *Monitor) Active() bool {
	return m.state == StateActive
}

// ShouldNotify reports whether a remote notification is still owed for the
// current episode. True while active and un-notified, so a failed send is
// retried on the next tick and a successful one is never duplicated.
func (m *Monitor) ShouldNotify() bool {
	return m.state == StateActive && !m.notified
}

// MarkNotified records that the current episode's notification succeeded.
func (m *Monitor) MarkNotified() {
	m.notified = true
}
