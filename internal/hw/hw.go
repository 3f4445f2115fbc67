// Package hw provides hardware access with abstraction for testing.
// The real implementations use the Linux GPIO character device (buzzer) and
// Linux IIO sysfs attributes (MQ-2 ADC channel, DHT climate sensor).
// The fake implementations allow testing without hardware.
package hw

// AnalogReader reads raw values from the gas sensor's ADC channel.
type AnalogReader interface {
	// Read returns one raw sample in the ADC's native range (0..4095 for
	// the 12-bit converters this daemon targets).
	Read() (int, error)

	// Close releases the ADC resources.
	Close() error
}

// ClimateSensor triggers a temperature/humidity measurement.
type ClimateSensor interface {
	// Measure performs one hardware read and returns temperature in
	// degrees Celsius and relative humidity in percent.
	Measure() (temperature, humidity float64, err error)

	// Close releases the sensor resources.
	Close() error
}

// Buzzer drives the alarm buzzer output. Set is idempotent: writing the
// current state again is harmless and the control loop does it every tick.
type Buzzer interface {
	Set(on bool) error
	Close() error
}

// Default hardware locations (Raspberry Pi, BCM numbering for the pin).
const (
	DefaultBuzzerPin = 25

	// DefaultADCPath is the IIO raw attribute of the MQ-2 analog channel.
	DefaultADCPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

	// DefaultClimateDir is the IIO device directory of the DHT sensor
	// (dht11 kernel driver, exposes in_temp_input and
	// in_humidityrelative_input in milli-units).
	DefaultClimateDir = "/sys/bus/iio/devices/iio:device1"
)
