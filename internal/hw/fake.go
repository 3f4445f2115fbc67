package hw

import "errors"

// FakeADC is a test double that returns scripted raw samples.
type FakeADC struct {
	// Samples contains scripted raw values. Each call to Read() consumes
	// the next sample; when exhausted the last sample repeats.
	Samples []int

	// ReadError, if set, will be returned by Read().
	ReadError error

	// Reads counts calls to Read.
	Reads int

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeADC creates a FakeADC with the given samples.
func NewFakeADC(samples ...int) *FakeADC {
	return &FakeADC{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeADC) Read() (int, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeADC) Close() error {
	f.Closed = true
	return nil
}

// ClimateSample is one scripted climate measurement.
type ClimateSample struct {
	Temperature float64
	Humidity    float64
	Err         error
}

// FakeClimate is a test double that returns scripted climate measurements.
type FakeClimate struct {
	// Samples contains scripted measurements, consumed one per Measure
	// call; when exhausted the last sample repeats.
	Samples []ClimateSample

	// Measures counts calls to Measure.
	Measures int

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeClimate creates a FakeClimate with the given samples.
func NewFakeClimate(samples ...ClimateSample) *FakeClimate {
	return &FakeClimate{Samples: samples}
}

// Measure returns the next scripted measurement.
func (f *FakeClimate) Measure() (float64, float64, error) {
	f.Measures++
	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.Temperature, s.Humidity, s.Err
}

// Close marks the sensor as closed.
func (f *FakeClimate) Close() error {
	f.Closed = true
	return nil
}

// FakeBuzzer records every state written to it.
type FakeBuzzer struct {
	// States contains every value passed to Set, in order.
	States []bool

	// On is the most recent state.
	On bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeBuzzer creates a FakeBuzzer.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

// Set records the requested state.
func (f *FakeBuzzer) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	f.On = on
	return nil
}

// Close forces the buzzer off and marks it closed.
func (f *FakeBuzzer) Close() error {
	f.On = false
	f.Closed = true
	return nil
}
