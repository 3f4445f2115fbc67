package notify

import "fmt"

// Message builders for the alert texts pushed through the relay. The layout
// matches what subscribers of the messaging platform already expect.

// GasAlertMessage formats the gas alarm alert.
func GasAlertMessage(raw, threshold int, temperature, humidity float64) string {
	return fmt.Sprintf(
		"GAS ALERT!\n"+
			"==============\n"+
			"Gas level exceeded!\n"+
			"Current: %d\n"+
			"Threshold: %d\n"+
			"Temp: %.1fC\n"+
			"Humidity: %.1f%%\n"+
			"==============\n"+
			"Check environment immediately!",
		raw, threshold, temperature, humidity)
}

// GasClearMessage formats the gas alarm cleared notice.
func GasClearMessage(raw, threshold int) string {
	return fmt.Sprintf(
		"GAS ALERT CLEARED\n"+
			"==============\n"+
			"Gas level is normal\n"+
			"Current: %d\n"+
			"Threshold: %d",
		raw, threshold)
}

// TempAlertMessage formats the high temperature alert.
func TempAlertMessage(temperature, threshold, humidity float64) string {
	return fmt.Sprintf(
		"HIGH TEMP ALERT!\n"+
			"==============\n"+
			"Temperature too high!\n"+
			"Current: %.1fC\n"+
			"Threshold: %.1fC\n"+
			"Humidity: %.1f%%\n"+
			"==============\n"+
			"Check environment!",
		temperature, threshold, humidity)
}

// TempClearMessage formats the temperature alarm cleared notice.
func TempClearMessage(temperature, threshold float64) string {
	return fmt.Sprintf(
		"TEMP ALERT CLEARED\n"+
			"==============\n"+
			"Temperature is normal\n"+
			"Current: %.1fC\n"+
			"Threshold: %.1fC",
		temperature, threshold)
}

// StartupMessage formats the announcement sent when monitoring begins.
func StartupMessage(gasThreshold int, tempThreshold float64) string {
	return fmt.Sprintf(
		"Gas Monitor Started\n"+
			"==============\n"+
			"System online!\n"+
			"Gas threshold: %d\n"+
			"Temp threshold: %.1fC\n"+
			"==============\n"+
			"Monitoring...",
		gasThreshold, tempThreshold)
}
