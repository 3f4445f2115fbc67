// Package config loads daemon configuration. Sources, later wins:
// built-in defaults, an optional YAML file, an optional .env file, and the
// process environment. Every parameter has a default, so missing
// configuration degrades to a startup warning instead of a crash.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sweeney/gas-monitor/internal/hw"
)

// Config holds all daemon parameters.
type Config struct {
	// Broker connection.
	BrokerHost     string `yaml:"broker_host"`
	BrokerPort     int    `yaml:"broker_port"`
	BrokerUser     string `yaml:"broker_user"`
	BrokerPassword string `yaml:"broker_password"`
	// BrokerTLS is a pointer so an explicit broker_tls: false survives
	// the port-8883 coercion. Read it through TLS().
	BrokerTLS *bool  `yaml:"broker_tls"`
	ClientID  string `yaml:"client_id"`

	// Notification relay.
	NotifyURL      string        `yaml:"notify_url"`
	NotifyUserID   string        `yaml:"notify_user_id"`
	NotifyTimeout  time.Duration `yaml:"notify_timeout"`
	NotifyInsecure bool          `yaml:"notify_insecure"`

	// Hardware.
	BuzzerPin  int    `yaml:"buzzer_pin"`
	ADCPath    string `yaml:"adc_path"`
	ClimateDir string `yaml:"climate_dir"`

	// Thresholds.
	GasThreshold   int     `yaml:"gas_threshold"`
	GasHysteresis  int     `yaml:"gas_hysteresis"`
	TempThreshold  float64 `yaml:"temp_threshold"`
	TempHysteresis float64 `yaml:"temp_hysteresis"`

	// Cadences.
	Poll            time.Duration `yaml:"poll"`
	PublishInterval time.Duration `yaml:"publish_interval"`
	ClimateInterval time.Duration `yaml:"climate_interval"`
	Warmup          time.Duration `yaml:"warmup"`
	Backoff         time.Duration `yaml:"backoff"`

	// Local status page, empty disables.
	HTTPAddr string `yaml:"http_addr"`

	LogLevel string `yaml:"log_level"`
}

// Environment variable names recognized by applyEnv. The broker and
// notification names match what the fleet's provisioning scripts already
// write to .env files.
const (
	EnvBrokerHost     = "MQTT_BROKER"
	EnvBrokerPort     = "MQTT_PORT"
	EnvBrokerUser     = "MQTT_USER"
	EnvBrokerPassword = "MQTT_PASSWORD"
	EnvNotifyURL      = "NOTIFY_URL"
	EnvNotifyUserID   = "NOTIFY_USER_ID"
	EnvGasThreshold   = "GAS_THRESHOLD"
	EnvTempThreshold  = "TEMP_THRESHOLD"
	EnvLogLevel       = "LOG_LEVEL"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BrokerHost:      "localhost",
		BrokerPort:      1883,
		ClientID:        "gas-monitor",
		NotifyTimeout:   10 * time.Second,
		BuzzerPin:       hw.DefaultBuzzerPin,
		ADCPath:         hw.DefaultADCPath,
		ClimateDir:      hw.DefaultClimateDir,
		GasThreshold:    1500,
		GasHysteresis:   100,
		TempThreshold:   35.0,
		TempHysteresis:  1.0,
		Poll:            100 * time.Millisecond,
		PublishInterval: 2 * time.Second,
		ClimateInterval: 2 * time.Second,
		Warmup:          20 * time.Second,
		Backoff:         5 * time.Second,
		HTTPAddr:        ":8080",
		LogLevel:        "info",
	}
}

// Load builds the effective configuration. yamlPath and envPath may be empty;
// a missing file at an explicitly given path is an error, a missing file at
// the default path is not.
func Load(yamlPath, envPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(filepath.Clean(yamlPath))
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unmarshal config file: %w", err)
		}
	}

	// godotenv only sets variables that are not already in the
	// environment, so real environment variables win over .env entries.
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return cfg, fmt.Errorf("load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, fmt.Errorf("load .env: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBrokerHost); v != "" {
		cfg.BrokerHost = v
	}
	if v := os.Getenv(EnvBrokerPort); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.BrokerPort = p
		}
	}
	if v := os.Getenv(EnvBrokerUser); v != "" {
		cfg.BrokerUser = v
	}
	if v := os.Getenv(EnvBrokerPassword); v != "" {
		cfg.BrokerPassword = v
	}
	if v := os.Getenv(EnvNotifyURL); v != "" {
		cfg.NotifyURL = v
	}
	if v := os.Getenv(EnvNotifyUserID); v != "" {
		cfg.NotifyUserID = v
	}
	if v := os.Getenv(EnvGasThreshold); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GasThreshold = n
		}
	}
	if v := os.Getenv(EnvTempThreshold); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TempThreshold = f
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	// Port 8883 without an explicit TLS setting means a TLS broker.
	if cfg.BrokerPort == 8883 && cfg.BrokerTLS == nil {
		tls := true
		cfg.BrokerTLS = &tls
	}
}

// TLS reports whether the broker connection uses TLS.
func (c Config) TLS() bool {
	return c.BrokerTLS != nil && *c.BrokerTLS
}

// BrokerURL returns the paho broker URL.
func (c Config) BrokerURL() string {
	scheme := "tcp"
	if c.TLS() {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.BrokerHost, c.BrokerPort)
}

// Warnings lists non-fatal configuration gaps found at startup.
func (c Config) Warnings() []string {
	var w []string
	if c.NotifyURL == "" {
		w = append(w, "notify_url not set, remote notifications disabled")
	}
	if c.NotifyURL != "" && c.NotifyUserID == "" {
		w = append(w, "notify_user_id not set, per-user alerts fall back to broadcast")
	}
	if c.BrokerUser == "" {
		w = append(w, "broker_user not set, connecting anonymously")
	}
	if c.GasHysteresis <= 0 || c.TempHysteresis <= 0 {
		w = append(w, "hysteresis margin is zero, alarms may chatter at the threshold")
	}
	return w
}
