// Package logic contains pure business logic for alarm state tracking.
// This package has NO external dependencies (no hardware, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import (
	"fmt"
	"time"
)

// AlarmState represents the alarm state of a monitored quantity.
type AlarmState string

const (
	StateNormal AlarmState = "NORMAL"
	StateActive AlarmState = "ACTIVE"
)

// Transition is the result of a single alarm evaluation.
type Transition int

const (
	// TransitionNone means the state did not change (includes the
	// hysteresis dead band while active).
	TransitionNone Transition = iota
	// TransitionActivated means the quantity crossed its threshold.
	TransitionActivated
	// TransitionCleared means the quantity dropped below threshold minus
	// hysteresis.
	TransitionCleared
)

// EventKind identifies an alarm log event.
type EventKind string

const (
	EventGasAlarm  EventKind = "gas"
	EventGasClear  EventKind = "gas_clear"
	EventTempAlarm EventKind = "temp"
	EventTempClear EventKind = "temp_clear"
)

// Event represents an alarm transition to be published to the alarm log.
type Event struct {
	Timestamp time.Time
	Kind      EventKind
	Message   string
}

// NewGasAlarm builds the alarm log event for a gas threshold crossing.
func NewGasAlarm(value, threshold int, t time.Time) Event {
	return Event{
		Timestamp: t,
		Kind:      EventGasAlarm,
		Message:   fmt.Sprintf("Gas concentration exceeded threshold! Value: %d, Threshold: %d", value, threshold),
	}
}

// NewGasClear builds the alarm log event for a gas alarm clearing.
func NewGasClear(value, threshold int, t time.Time) Event {
	return Event{
		Timestamp: t,
		Kind:      EventGasClear,
		Message:   fmt.Sprintf("Gas level normal. Value: %d", value),
	}
}

// NewTempAlarm builds the alarm log event for a temperature threshold crossing.
func NewTempAlarm(value, threshold float64, t time.Time) Event {
	return Event{
		Timestamp: t,
		Kind:      EventTempAlarm,
		Message:   fmt.Sprintf("Temperature exceeded threshold! Value: %.1fC, Threshold: %.1fC", value, threshold),
	}
}

// NewTempClear builds the alarm log event for a temperature alarm clearing.
func NewTempClear(value, threshold float64, t time.Time) Event {
	return Event{
		Timestamp: t,
		Kind:      EventTempClear,
		Message:   fmt.Sprintf("Temperature normal. Value: %.1fC", value),
	}
}
