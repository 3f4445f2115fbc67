package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/gas-monitor/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onoff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Gas Monitor</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.normal { color: green; font-weight: bold; }
.active { color: red; font-weight: bold; }
.warmup { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
.stale { color: #888; }
</style>
</head>
<body>
<h1>Gas Monitor</h1>
{{if not .Ready}}<p class="warmup">Warming up — readings are not evaluated for alarms yet.</p>{{end}}

<table>
<tr><th>Gas (raw)</th><td>{{.Gas.Raw}} / threshold {{.GasThreshold}} (hysteresis {{.GasHysteresis}})</td></tr>
<tr><th>Gas (voltage)</th><td>{{printf "%.2f" .Gas.Voltage}} V</td></tr>
<tr><th>Gas (percent)</th><td>{{printf "%.1f" .Gas.Percentage}} %</td></tr>
<tr><th>Gas alarm</th><td class="{{if eq .GasAlarm "ACTIVE"}}active{{else}}normal{{end}}">{{.GasAlarm}}</td></tr>
<tr><th>Temperature</th><td{{if not .Climate.Valid}} class="stale"{{end}}>{{printf "%.1f" .Climate.Temperature}} &deg;C / threshold {{printf "%.1f" .TempThreshold}} &deg;C</td></tr>
<tr><th>Humidity</th><td{{if not .Climate.Valid}} class="stale"{{end}}>{{printf "%.1f" .Climate.Humidity}} %</td></tr>
<tr><th>Temp alarm</th><td class="{{if eq .TempAlarm "ACTIVE"}}active{{else}}normal{{end}}">{{.TempAlarm}}</td></tr>
<tr><th>Climate reading valid</th><td>{{yesno .Climate.Valid}}</td></tr>
<tr><th>Buzzer enabled</th><td>{{onoff .Overrides.BuzzerEnabled}}</td></tr>
<tr><th>Manually silenced</th><td>{{yesno .Overrides.ManualSilence}}</td></tr>
</table>

<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}} ({{.Config.Broker}})</td></tr>
<tr><th>Alarms raised</th><td>{{.Counters.AlarmsRaised}}</td></tr>
<tr><th>Alarms cleared</th><td>{{.Counters.AlarmsCleared}}</td></tr>
<tr><th>Notifications sent</th><td>{{.Counters.NotificationsSent}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02 15:04:05 MST"}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

// renderHTML writes the status page. Render errors are swallowed: a broken
// status page must never matter to the control loop.
func renderHTML(w io.Writer, snap status.Snapshot) {
	_ = indexTmpl.Execute(w, snap)
}
