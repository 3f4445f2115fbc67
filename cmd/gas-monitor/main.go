// Command gas-monitor samples an MQ-2 gas sensor and a DHT climate sensor,
// raises buzzer and remote alarms with hysteresis, and publishes telemetry to
// MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/gas-monitor/internal/config"
	"github.com/sweeney/gas-monitor/internal/hw"
	"github.com/sweeney/gas-monitor/internal/logger"
	"github.com/sweeney/gas-monitor/internal/mqtt"
	"github.com/sweeney/gas-monitor/internal/notify"
	"github.com/sweeney/gas-monitor/internal/sensor"
	"github.com/sweeney/gas-monitor/internal/status"
	"github.com/sweeney/gas-monitor/internal/web"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	envPath := flag.String("env", "", ".env file (optional, defaults to ./.env if present)")
	sim := flag.Bool("sim", false, "Use simulated hardware (for development off-device)")
	printReading := flag.Bool("print-reading", false, "Print one reading and exit")
	logLevel := flag.String("log-level", "", "Log level override (debug|info|warn|error)")

	flag.Parse()

	cfg, err := config.Load(*cfgPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(level)
	defer log.Sync()
	if !ok {
		log.Warnw("unknown log level, using info", "level", cfg.LogLevel)
	}
	for _, w := range cfg.Warnings() {
		log.Warnw(w)
	}

	if err := run(cfg, *sim, *printReading, log); err != nil {
		log.Fatalw("fatal", "error", err)
	}
}

func run(cfg config.Config, sim, printReading bool, log *zap.SugaredLogger) error {
	adc, climate, buzzer, err := buildHardware(cfg, sim)
	if err != nil {
		return fmt.Errorf("init hardware: %w", err)
	}
	// Scoped release: whatever path exits run, the buzzer ends up off and
	// the lines are released.
	defer func() {
		if err := buzzer.Set(false); err != nil {
			log.Errorw("force buzzer off on exit", "error", err)
		}
		buzzer.Close()
		climate.Close()
		adc.Close()
	}()

	sampler := sensor.New(adc, climate, log)

	if printReading {
		return printOnce(sampler)
	}

	var notifier notify.Notifier
	if cfg.NotifyURL != "" {
		notifier = notify.NewClient(cfg.NotifyURL, cfg.NotifyTimeout, cfg.NotifyInsecure, log)
	}

	broker, err := mqtt.NewClient(mqtt.Options{
		BrokerURL:   cfg.BrokerURL(),
		ClientID:    cfg.ClientID,
		Username:    cfg.BrokerUser,
		Password:    cfg.BrokerPassword,
		InsecureTLS: cfg.TLS(),
	}, log)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer broker.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:    cfg.Poll.Milliseconds(),
		PublishMs: cfg.PublishInterval.Milliseconds(),
		ClimateMs: cfg.ClimateInterval.Milliseconds(),
		WarmupMs:  cfg.Warmup.Milliseconds(),
		Broker:    cfg.BrokerURL(),
		HTTPAddr:  cfg.HTTPAddr,
		NotifyURL: cfg.NotifyURL,
	})

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorw("http server", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infow("http status server listening", "addr", cfg.HTTPAddr)
	}

	if notifier != nil {
		if err := notifier.Broadcast(notify.StartupMessage(cfg.GasThreshold, cfg.TempThreshold)); err != nil {
			log.Warnw("startup notification failed", "error", err)
		}
	}

	log.Infow("started",
		"poll", cfg.Poll,
		"publish", cfg.PublishInterval,
		"warmup", cfg.Warmup,
		"broker", cfg.BrokerURL(),
		"gas_threshold", cfg.GasThreshold,
		"temp_threshold", cfg.TempThreshold,
	)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(loopDeps{
		cfg:      cfg,
		sampler:  sampler,
		buzzer:   buzzer,
		pub:      broker,
		conn:     broker,
		cmds:     broker,
		notifier: notifier,
		tracker:  tracker,
		log:      log,
		now:      time.Now,
		tick:     ticker.C,
		sig:      sigCh,
	})
}

func buildHardware(cfg config.Config, sim bool) (hw.AnalogReader, hw.ClimateSensor, hw.Buzzer, error) {
	if sim {
		// Mid-scale gas level and a comfortable room, so a simulated run
		// exercises the full pipeline without tripping alarms.
		return hw.NewFakeADC(900),
			hw.NewFakeClimate(hw.ClimateSample{Temperature: 23.5, Humidity: 45}),
			hw.NewFakeBuzzer(), nil
	}

	adc, err := hw.NewSysfsADC(cfg.ADCPath)
	if err != nil {
		return nil, nil, nil, err
	}
	climate, err := hw.NewSysfsClimate(cfg.ClimateDir)
	if err != nil {
		adc.Close()
		return nil, nil, nil, err
	}
	buzzer, err := hw.NewRealBuzzer(cfg.BuzzerPin)
	if err != nil {
		climate.Close()
		adc.Close()
		return nil, nil, nil, err
	}
	return adc, climate, buzzer, nil
}

func printOnce(sampler *sensor.Sampler) error {
	now := time.Now()
	gas, err := sampler.SampleGas(now)
	if err != nil {
		return fmt.Errorf("sample gas: %w", err)
	}
	climate := sampler.SampleClimate(now, sensor.ClimateReading{})

	fmt.Printf("Gas: raw=%d voltage=%.2fV percentage=%.1f%%\n", gas.Raw, gas.Voltage, gas.Percentage)
	if climate.Valid {
		fmt.Printf("Climate: temp=%.1fC humidity=%.1f%%\n", climate.Temperature, climate.Humidity)
	} else {
		fmt.Println("Climate: read failed")
	}
	return nil
}
