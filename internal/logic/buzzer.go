package logic

// Overrides holds the user-controllable buzzer flags. They are mutated only
// by remote commands and by new alarm activations (which clear ManualSilence
// so a fresh episode re-alerts someone who silenced a previous one).
type Overrides struct {
	BuzzerEnabled bool
	ManualSilence bool
}

// DefaultOverrides returns the startup overrides: buzzer enabled, not silenced.
func DefaultOverrides() Overrides {
	return Overrides{BuzzerEnabled: true}
}

// BuzzerActive computes the buzzer drive state. Pure function of its inputs:
// the buzzer sounds while any alarm is active, unless disabled or silenced.
func BuzzerActive(gasAlarm, tempAlarm bool, o Overrides) bool {
	return (gasAlarm || tempAlarm) && o.BuzzerEnabled && !o.ManualSilence
}
