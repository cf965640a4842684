package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/ac-node/internal/status"
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
	"power": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
	"modeOrUnknown": func(m string) string {
		if m == "" {
			return "UNKNOWN"
		}
		return m
	},
	"temp": func(snap status.Snapshot) string {
		if !snap.RoomTempValid {
			return "—"
		}
		return fmt.Sprintf("%.1f °C", snap.RoomTempC)
	},
	"localTime": func(t time.Time) string {
		return t.Local().Format("15:04:05")
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AC Node</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>AC Node</h1>

<table>
<tr><th>Occupancy</th><td>{{.Occupancy}} (was {{.PrevOccupancy}})</td></tr>
<tr><th>AC power</th><td class="{{if .AC.Power}}on{{else}}off{{end}}">{{power .AC.Power}}</td></tr>
<tr><th>AC mode</th><td>{{modeOrUnknown .AC.Mode}}</td></tr>
<tr><th>Target temp</th><td>{{.AC.TargetTemp}} °C</td></tr>
<tr><th>Room temp</th><td>{{temp .}}</td></tr>
{{if .AutoOffActive}}<tr><th>Auto-off</th><td>at {{localTime .AutoOffAt}}</td></tr>{{end}}
</table>

<table>
<tr><th>Entries</th><td>{{.Counts.Entries}}</td></tr>
<tr><th>Exits</th><td>{{.Counts.Exits}}</td></tr>
<tr><th>Discarded windows</th><td>{{.Counts.Discarded}}</td></tr>
</table>

<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">
{{if .MQTTConnected}}connected{{else}}disconnected{{end}} ({{.Config.Broker}})</td></tr>
<tr><th>Topic prefix</th><td>{{.Config.Prefix}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}} ms</td></tr>
<tr><th>Trigger</th><td>below {{.Config.BaselineCm}} − {{.Config.MarginCm}} cm</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Best effort; a render error just truncates the page.
	_ = indexTmpl.Execute(w, snap)
}
