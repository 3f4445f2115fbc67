// Package sensor converts raw hardware reads into calibrated readings.
// Sampling cadence and rate limiting are driven by the control loop; the
// sampler itself keeps no mutable state.
package sensor

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/gas-monitor/internal/hw"
)

// MQ-2 ADC calibration. The converter is 12-bit referenced to 3.3V.
const (
	FullScale        = 4095
	ReferenceVoltage = 3.3

	// GasSampleCount raw reads are averaged per gas sample to smooth the
	// noisy resistive element.
	GasSampleCount = 10

	// gasSampleDelay is the micro-delay between consecutive raw reads.
	gasSampleDelay = 10 * time.Millisecond

	// MinClimateInterval is the minimum spacing between physical climate
	// reads. DHT sensors return garbage when polled faster.
	MinClimateInterval = 2 * time.Second
)

// GasReading is one averaged, calibrated gas sample.
type GasReading struct {
	Raw        int
	Voltage    float64
	Percentage float64
	Timestamp  time.Time
}

// ClimateReading is one temperature/humidity measurement. Valid is false when
// the hardware read failed and the values are the last known good ones.
type ClimateReading struct {
	Temperature float64
	Humidity    float64
	Valid       bool
	Timestamp   time.Time
}

// Sampler reads the gas and climate sensors.
type Sampler struct {
	adc     hw.AnalogReader
	climate hw.ClimateSensor
	sleep   func(time.Duration)
	log     *zap.SugaredLogger
}

// New creates a Sampler. The sleep function defaults to time.Sleep and is
// injectable for tests.
func New(adc hw.AnalogReader, climate hw.ClimateSensor, log *zap.SugaredLogger) *Sampler {
	return &Sampler{
		adc:     adc,
		climate: climate,
		sleep:   time.Sleep,
		log:     log,
	}
}

// SetSleep replaces the inter-read delay function, so tests can run the
// averaging loop without real sleeps.
func (s *Sampler) SetSleep(fn func(time.Duration)) {
	if fn != nil {
		s.sleep = fn
	}
}

// SampleGas takes GasSampleCount raw reads at a fixed micro-delay and returns
// the integer average with derived voltage and percentage.
func (s *Sampler) SampleGas(now time.Time) (GasReading, error) {
	sum := 0
	for i := 0; i < GasSampleCount; i++ {
		if i > 0 {
			s.sleep(gasSampleDelay)
		}
		v, err := s.adc.Read()
		if err != nil {
			return GasReading{}, fmt.Errorf("gas sample %d: %w", i, err)
		}
		sum += v
	}

	raw := sum / GasSampleCount
	return GasReading{
		Raw:        raw,
		Voltage:    round(float64(raw)/FullScale*ReferenceVoltage, 2),
		Percentage: round(float64(raw)/FullScale*100, 1),
		Timestamp:  now,
	}, nil
}

// SampleClimate performs one physical measurement. On failure it degrades to
// the last known good values with Valid=false instead of returning an error,
// so a flaky DHT never interrupts the control loop. Callers enforce
// MinClimateInterval between calls.
func (s *Sampler) SampleClimate(now time.Time, last ClimateReading) ClimateReading {
	temp, hum, err := s.climate.Measure()
	if err != nil {
		s.log.Warnw("climate read failed, keeping last values", "error", err)
		return ClimateReading{
			Temperature: last.Temperature,
			Humidity:    last.Humidity,
			Valid:       false,
			Timestamp:   now,
		}
	}

	return ClimateReading{
		Temperature: temp,
		Humidity:    hum,
		Valid:       true,
		Timestamp:   now,
	}
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
