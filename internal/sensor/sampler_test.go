package sensor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sweeney/gas-monitor/internal/hw"
)

func testSampler(adc hw.AnalogReader, climate hw.ClimateSensor) (*Sampler, *[]time.Duration) {
	s := New(adc, climate, zap.NewNop().Sugar())
	var sleeps []time.Duration
	s.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return s, &sleeps
}

func TestSampleGasAverages(t *testing.T) {
	// Ten reads: 2048 nine times, then 2058 — integer average 2049.
	adc := hw.NewFakeADC(2048, 2048, 2048, 2048, 2048, 2048, 2048, 2048, 2048, 2058)
	s, sleeps := testSampler(adc, hw.NewFakeClimate())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r, err := s.SampleGas(now)
	require.NoError(t, err)

	assert.Equal(t, 2049, r.Raw)
	assert.Equal(t, now, r.Timestamp)
	assert.Equal(t, GasSampleCount, adc.Reads)
	assert.Len(t, *sleeps, GasSampleCount-1, "micro-delay between reads, not after the last")
}

func TestSampleGasDerivedValues(t *testing.T) {
	tests := []struct {
		raw            int
		wantVoltage    float64
		wantPercentage float64
	}{
		{0, 0, 0},
		{4095, 3.3, 100},
		{2048, 1.65, 50.0},
		{1500, 1.21, 36.6},
	}

	for _, tt := range tests {
		adc := hw.NewFakeADC(tt.raw)
		s, _ := testSampler(adc, hw.NewFakeClimate())

		r, err := s.SampleGas(time.Now())
		require.NoError(t, err)
		assert.Equalf(t, tt.raw, r.Raw, "raw=%d", tt.raw)
		assert.InDeltaf(t, tt.wantVoltage, r.Voltage, 1e-9, "voltage for raw=%d", tt.raw)
		assert.InDeltaf(t, tt.wantPercentage, r.Percentage, 1e-9, "percentage for raw=%d", tt.raw)
	}
}

func TestSampleGasReadError(t *testing.T) {
	adc := hw.NewFakeADC(100)
	adc.ReadError = errors.New("adc gone")
	s, _ := testSampler(adc, hw.NewFakeClimate())

	_, err := s.SampleGas(time.Now())
	assert.Error(t, err)
}

func TestSampleClimateValid(t *testing.T) {
	climate := hw.NewFakeClimate(hw.ClimateSample{Temperature: 24.0, Humidity: 55.0})
	s, _ := testSampler(hw.NewFakeADC(0), climate)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r := s.SampleClimate(now, ClimateReading{})

	assert.True(t, r.Valid)
	assert.Equal(t, 24.0, r.Temperature)
	assert.Equal(t, 55.0, r.Humidity)
	assert.Equal(t, now, r.Timestamp)
}

func TestSampleClimateDegradesToLastGood(t *testing.T) {
	climate := hw.NewFakeClimate(hw.ClimateSample{Err: errors.New("checksum")})
	s, _ := testSampler(hw.NewFakeADC(0), climate)

	last := ClimateReading{Temperature: 22.5, Humidity: 48.0, Valid: true}
	now := time.Now()
	r := s.SampleClimate(now, last)

	assert.False(t, r.Valid)
	assert.Equal(t, 22.5, r.Temperature)
	assert.Equal(t, 48.0, r.Humidity)
	assert.Equal(t, now, r.Timestamp)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.65, round(1.6504, 2))
	assert.Equal(t, 1.66, round(1.656, 2))
	assert.Equal(t, 36.6, round(36.63, 1))
	assert.Equal(t, 100.0, round(100.0, 1))
}
