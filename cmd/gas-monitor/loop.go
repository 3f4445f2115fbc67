package main

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/gas-monitor/internal/config"
	"github.com/sweeney/gas-monitor/internal/hw"
	"github.com/sweeney/gas-monitor/internal/logic"
	"github.com/sweeney/gas-monitor/internal/mqtt"
	"github.com/sweeney/gas-monitor/internal/notify"
	"github.com/sweeney/gas-monitor/internal/sensor"
	"github.com/sweeney/gas-monitor/internal/status"
)

// loopDeps bundles everything runLoop needs. now, tick, and sig are
// injectable so tests drive the loop without sleeping.
type loopDeps struct {
	cfg      config.Config
	sampler  *sensor.Sampler
	buzzer   hw.Buzzer
	pub      mqtt.Publisher
	conn     mqtt.ConnectionStatus // may be nil
	cmds     mqtt.CommandSource
	notifier notify.Notifier // nil disables remote notifications
	tracker  *status.Tracker // may be nil
	log      *zap.SugaredLogger
	now      func() time.Time
	tick     <-chan time.Time
	sig      <-chan os.Signal
	sleep    func(time.Duration) // backoff; nil means time.Sleep
}

// loopState is all mutable state, owned exclusively by the loop goroutine.
// Commands mutate it at the top of an iteration, so a command received in
// iteration i is visible to that iteration's alarm evaluation and buzzer
// output.
type loopState struct {
	gas  *logic.Monitor
	temp *logic.Monitor

	overrides logic.Overrides

	gasThreshold   int
	gasHysteresis  int
	tempThreshold  float64
	tempHysteresis float64

	lastGas         sensor.GasReading
	lastClimate     sensor.ClimateReading
	lastClimateRead time.Time
	lastPublish     time.Time

	counters status.Counters
}

func newLoopState(cfg config.Config) *loopState {
	return &loopState{
		gas:            logic.NewMonitor(),
		temp:           logic.NewMonitor(),
		overrides:      logic.DefaultOverrides(),
		gasThreshold:   cfg.GasThreshold,
		gasHysteresis:  cfg.GasHysteresis,
		tempThreshold:  cfg.TempThreshold,
		tempHysteresis: cfg.TempHysteresis,
	}
}

// runLoop is the single perpetual control loop. It returns only on a signal;
// every per-iteration failure is logged, followed by a backoff, and the loop
// continues.
func runLoop(d loopDeps) error {
	sleep := d.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	st := newLoopState(d.cfg)

	warmupUntil := d.now().Add(d.cfg.Warmup)
	if d.cfg.Warmup > 0 {
		d.log.Infow("warming up gas sensor", "until", warmupUntil.Format(time.RFC3339))
	}

	for {
		select {
		case s := <-d.sig:
			d.log.Infow("received signal, shutting down", "signal", s)
			return nil

		case <-d.tick:
			if failed := iterate(d, st, warmupUntil); failed {
				sleep(d.cfg.Backoff)
			}
		}
	}
}

// iterate runs one control-loop pass and reports whether any step failed.
func iterate(d loopDeps, st *loopState, warmupUntil time.Time) bool {
	t := d.now()
	ready := !t.Before(warmupUntil)
	failed := false

	// Commands first, so their effects are ordered before this
	// iteration's sampling and buzzer output. One per tick keeps the
	// cadence bounded.
	if cmd, ok := d.cmds.Poll(); ok {
		applyCommand(d, st, cmd)
	}

	gasReading, err := d.sampler.SampleGas(t)
	gasOK := err == nil
	if gasOK {
		st.lastGas = gasReading
	} else {
		d.log.Errorw("gas sample failed", "error", err)
		failed = true
	}

	if ready && gasOK {
		evaluateGas(d, st, gasReading, t)
	}

	if t.Sub(st.lastClimateRead) >= d.cfg.ClimateInterval {
		st.lastClimate = d.sampler.SampleClimate(t, st.lastClimate)
		st.lastClimateRead = t
		// Invalid readings are degraded copies of old data; evaluating
		// them could flap the alarm on stale values.
		if ready && st.lastClimate.Valid {
			evaluateTemp(d, st, st.lastClimate, t)
		}
	}

	if ready {
		attemptNotifications(d, st)
	}

	buzzerOn := logic.BuzzerActive(st.gas.Active(), st.temp.Active(), st.overrides)
	if err := d.buzzer.Set(buzzerOn); err != nil {
		d.log.Errorw("buzzer update failed", "error", err)
		failed = true
	}

	if t.Sub(st.lastPublish) >= d.cfg.PublishInterval {
		if !publishTelemetry(d, st, t) {
			failed = true
		}
		st.lastPublish = t
	}

	if d.tracker != nil {
		d.tracker.Update(st.lastGas, st.lastClimate, st.gas.State(), st.temp.State(),
			st.overrides, st.gasThreshold, st.gasHysteresis, st.tempThreshold, st.tempHysteresis, ready)
		d.tracker.SetCounters(st.counters)
		if d.conn != nil {
			d.tracker.SetMQTTConnected(d.conn.IsConnected())
		}
	}

	return failed
}

func evaluateGas(d loopDeps, st *loopState, r sensor.GasReading, t time.Time) {
	switch st.gas.Evaluate(float64(r.Raw), float64(st.gasThreshold), float64(st.gasHysteresis)) {
	case logic.TransitionActivated:
		// A fresh episode always re-alerts, even after a manual silence
		// of the previous one.
		st.overrides.ManualSilence = false
		st.counters.AlarmsRaised++
		d.log.Warnw("gas alarm raised", "raw", r.Raw, "threshold", st.gasThreshold)
		publishAlarm(d, st, logic.NewGasAlarm(r.Raw, st.gasThreshold, t))

	case logic.TransitionCleared:
		st.counters.AlarmsCleared++
		d.log.Infow("gas alarm cleared", "raw", r.Raw, "threshold", st.gasThreshold)
		publishAlarm(d, st, logic.NewGasClear(r.Raw, st.gasThreshold, t))
		notifyBestEffort(d, st, notify.GasClearMessage(r.Raw, st.gasThreshold))
	}
}

func evaluateTemp(d loopDeps, st *loopState, r sensor.ClimateReading, t time.Time) {
	switch st.temp.Evaluate(r.Temperature, st.tempThreshold, st.tempHysteresis) {
	case logic.TransitionActivated:
		st.overrides.ManualSilence = false
		st.counters.AlarmsRaised++
		d.log.Warnw("temperature alarm raised", "temperature", r.Temperature, "threshold", st.tempThreshold)
		publishAlarm(d, st, logic.NewTempAlarm(r.Temperature, st.tempThreshold, t))

	case logic.TransitionCleared:
		st.counters.AlarmsCleared++
		d.log.Infow("temperature alarm cleared", "temperature", r.Temperature, "threshold", st.tempThreshold)
		publishAlarm(d, st, logic.NewTempClear(r.Temperature, st.tempThreshold, t))
		notifyBestEffort(d, st, notify.TempClearMessage(r.Temperature, st.tempThreshold))
	}
}

// attemptNotifications sends the alert owed for any active, un-notified
// episode. A failure leaves the episode un-notified, so the next tick
// retries; a success pins the dedup flag for the rest of the episode.
func attemptNotifications(d loopDeps, st *loopState) {
	if d.notifier == nil {
		return
	}

	if st.gas.ShouldNotify() {
		msg := notify.GasAlertMessage(st.lastGas.Raw, st.gasThreshold,
			st.lastClimate.Temperature, st.lastClimate.Humidity)
		if err := send(d, msg); err != nil {
			d.log.Warnw("gas alert notification failed, retrying next tick", "error", err)
		} else {
			st.gas.MarkNotified()
			st.counters.NotificationsSent++
		}
	}

	if st.temp.ShouldNotify() {
		msg := notify.TempAlertMessage(st.lastClimate.Temperature, st.tempThreshold,
			st.lastClimate.Humidity)
		if err := send(d, msg); err != nil {
			d.log.Warnw("temp alert notification failed, retrying next tick", "error", err)
		} else {
			st.temp.MarkNotified()
			st.counters.NotificationsSent++
		}
	}
}

// notifyBestEffort is for cleared notices: one attempt, failure only logged.
func notifyBestEffort(d loopDeps, st *loopState, msg string) {
	if d.notifier == nil {
		return
	}
	if err := send(d, msg); err != nil {
		d.log.Warnw("notification failed", "error", err)
		return
	}
	st.counters.NotificationsSent++
}

func send(d loopDeps, msg string) error {
	if d.cfg.NotifyUserID != "" {
		return d.notifier.Send(d.cfg.NotifyUserID, msg)
	}
	return d.notifier.Broadcast(msg)
}

func publishAlarm(d loopDeps, st *loopState, ev logic.Event) {
	if err := d.pub.PublishAlarm(mqtt.NewAlarmLog(ev)); err != nil {
		st.counters.PublishErrors++
		d.log.Warnw("alarm log publish failed", "kind", ev.Kind, "error", err)
	}
}

func publishTelemetry(d loopDeps, st *loopState, t time.Time) bool {
	ok := true
	if err := d.pub.PublishGas(mqtt.NewGasStatus(st.lastGas, st.gasThreshold, st.gas.Active(), st.overrides, t)); err != nil {
		st.counters.PublishErrors++
		d.log.Warnw("gas telemetry publish failed", "error", err)
		ok = false
	}
	if err := d.pub.PublishClimate(mqtt.NewClimateStatus(st.lastClimate, st.tempThreshold, st.temp.Active(), t)); err != nil {
		st.counters.PublishErrors++
		d.log.Warnw("climate telemetry publish failed", "error", err)
		ok = false
	}
	return ok
}

// applyCommand mutates loop state according to one remote command. Unknown
// commands and malformed values are ignored; nothing here may block.
func applyCommand(d loopDeps, st *loopState, cmd mqtt.Command) {
	switch cmd.Name {
	case mqtt.CommandSilence:
		st.overrides.ManualSilence = true
		forceBuzzerOff(d)
		d.log.Infow("buzzer silenced by command")

	case mqtt.CommandEnable:
		st.overrides.BuzzerEnabled = true
		st.overrides.ManualSilence = false
		d.log.Infow("buzzer enabled by command")

	case mqtt.CommandDisable:
		st.overrides.BuzzerEnabled = false
		forceBuzzerOff(d)
		d.log.Infow("buzzer disabled by command")

	case mqtt.CommandReset:
		st.overrides.ManualSilence = false
		d.log.Infow("manual silence reset by command")

	case mqtt.CommandSetGasThreshold:
		v, ok := cmd.Float()
		if !ok {
			d.log.Debugw("set_gas_threshold without usable value, ignoring")
			return
		}
		st.gasThreshold = int(v)
		d.log.Infow("gas threshold updated", "threshold", st.gasThreshold)

	case mqtt.CommandSetTempThreshold:
		v, ok := cmd.Float()
		if !ok {
			d.log.Debugw("set_temp_threshold without usable value, ignoring")
			return
		}
		st.tempThreshold = v
		d.log.Infow("temperature threshold updated", "threshold", st.tempThreshold)

	default:
		d.log.Debugw("ignoring unknown command", "command", cmd.Name)
	}
}

func forceBuzzerOff(d loopDeps) {
	if err := d.buzzer.Set(false); err != nil {
		d.log.Errorw("force buzzer off failed", "error", err)
	}
}
