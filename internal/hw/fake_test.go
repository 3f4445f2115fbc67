package hw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeADCConsumesSamples(t *testing.T) {
	f := NewFakeADC(100, 200, 300)

	for _, want := range []int{100, 200, 300} {
		got, err := f.Read()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Exhausted samples repeat the last value.
	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, 300, got)
	assert.Equal(t, 4, f.Reads)
}

func TestFakeADCErrors(t *testing.T) {
	f := NewFakeADC()
	_, err := f.Read()
	assert.Error(t, err, "no samples configured")

	f = NewFakeADC(100)
	f.ReadError = errors.New("boom")
	_, err = f.Read()
	assert.Error(t, err)
}

func TestFakeADCClose(t *testing.T) {
	f := NewFakeADC(1)
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}

func TestFakeClimateConsumesSamples(t *testing.T) {
	readErr := errors.New("checksum")
	f := NewFakeClimate(
		ClimateSample{Temperature: 21.5, Humidity: 40},
		ClimateSample{Err: readErr},
	)

	temp, hum, err := f.Measure()
	require.NoError(t, err)
	assert.Equal(t, 21.5, temp)
	assert.Equal(t, 40.0, hum)

	_, _, err = f.Measure()
	assert.ErrorIs(t, err, readErr)

	// Last sample (the error) repeats.
	_, _, err = f.Measure()
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, 3, f.Measures)
}

func TestFakeBuzzerRecordsStates(t *testing.T) {
	f := NewFakeBuzzer()

	require.NoError(t, f.Set(true))
	require.NoError(t, f.Set(true))
	require.NoError(t, f.Set(false))

	assert.Equal(t, []bool{true, true, false}, f.States)
	assert.False(t, f.On)

	f.SetError = errors.New("gpio gone")
	assert.Error(t, f.Set(true))
	assert.Len(t, f.States, 3)
}

func TestFakeBuzzerCloseForcesOff(t *testing.T) {
	f := NewFakeBuzzer()
	require.NoError(t, f.Set(true))
	require.NoError(t, f.Close())
	assert.False(t, f.On)
	assert.True(t, f.Closed)
}
