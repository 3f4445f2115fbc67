//go:build linux

package hw

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// RealBuzzer drives a buzzer connected to a GPIO line using the Linux GPIO
// character device.
type RealBuzzer struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealBuzzer requests the given BCM pin as an output, initially off.
func NewRealBuzzer(pin int) (*RealBuzzer, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &RealBuzzer{chip: chip, line: line}, nil
}

// Set drives the buzzer line high or low.
func (b *RealBuzzer) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := b.line.SetValue(v); err != nil {
		return fmt.Errorf("set buzzer: %w", err)
	}
	return nil
}

// Close forces the buzzer off and releases GPIO resources. The line is
// reconfigured to input with pull-down to match Pi boot defaults so the
// buzzer cannot be left sounding across a restart.
func (b *RealBuzzer) Close() error {
	var errs []error

	if b.line != nil {
		if err := b.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("silence buzzer: %w", err))
		}
		if err := b.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// SysfsADC reads raw samples from an IIO ADC attribute file.
type SysfsADC struct {
	path string
}

// NewSysfsADC creates a reader for the given in_voltageN_raw attribute.
// The attribute must exist and be readable at construction time.
func NewSysfsADC(path string) (*SysfsADC, error) {
	if _, err := readIIOInt(path); err != nil {
		return nil, fmt.Errorf("probe adc: %w", err)
	}
	return &SysfsADC{path: path}, nil
}

// Read returns one raw ADC sample.
func (a *SysfsADC) Read() (int, error) {
	v, err := readIIOInt(a.path)
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}
	return v, nil
}

// Close releases nothing; sysfs attributes are opened per read.
func (a *SysfsADC) Close() error {
	return nil
}

// SysfsClimate reads a DHT-style IIO device exposing temperature and relative
// humidity in milli-units.
type SysfsClimate struct {
	tempPath     string
	humidityPath string
}

// NewSysfsClimate creates a sensor for the given IIO device directory.
func NewSysfsClimate(dir string) (*SysfsClimate, error) {
	s := &SysfsClimate{
		tempPath:     filepath.Join(dir, "in_temp_input"),
		humidityPath: filepath.Join(dir, "in_humidityrelative_input"),
	}
	if _, err := os.Stat(s.tempPath); err != nil {
		return nil, fmt.Errorf("probe climate sensor: %w", err)
	}
	return s, nil
}

// Measure performs one read of both channels. DHT sensors fail sporadically
// (checksum errors surface as EIO), so callers must treat errors as
// transient.
func (s *SysfsClimate) Measure() (float64, float64, error) {
	t, err := readIIOInt(s.tempPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read temperature: %w", err)
	}
	h, err := readIIOInt(s.humidityPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read humidity: %w", err)
	}
	return float64(t) / 1000, float64(h) / 1000, nil
}

// Close releases nothing; sysfs attributes are opened per read.
func (s *SysfsClimate) Close() error {
	return nil
}

func readIIOInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
