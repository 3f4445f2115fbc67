//go:build !linux

package hw

import "errors"

var errUnsupported = errors.New("hw: not supported on this platform (requires Linux)")

// RealBuzzer is not available on non-Linux platforms.
type RealBuzzer struct{}

// NewRealBuzzer returns an error on non-Linux platforms.
func NewRealBuzzer(pin int) (*RealBuzzer, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (b *RealBuzzer) Set(on bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *RealBuzzer) Close() error { return nil }

// SysfsADC is not available on non-Linux platforms.
type SysfsADC struct{}

// NewSysfsADC returns an error on non-Linux platforms.
func NewSysfsADC(path string) (*SysfsADC, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (a *SysfsADC) Read() (int, error) { return 0, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (a *SysfsADC) Close() error { return nil }

// SysfsClimate is not available on non-Linux platforms.
type SysfsClimate struct{}

// NewSysfsClimate returns an error on non-Linux platforms.
func NewSysfsClimate(dir string) (*SysfsClimate, error) {
	return nil, errUnsupported
}

// Measure is not implemented on non-Linux platforms.
func (s *SysfsClimate) Measure() (float64, float64, error) {
	return 0, 0, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (s *SysfsClimate) Close() error { return nil }
