package web

import (
	"html/template"

	"goaltrack/internal/tracker"
)

// indexData feeds the status page template.
type indexData struct {
	Stats     tracker.GoalStats
	Goals     []goalView
	Tasks     []taskView
	RateWeeks int
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="30">
<title>Goal Tracker</title>
<style>
 body { font-family: sans-serif; margin: 2em auto; max-width: 48em; padding: 0 1em; background: #f5f5f5; color: #222; }
 h1 { color: #333; }
 .card { background: #fff; border-radius: 8px; padding: 1em; margin: 0.75em 0; box-shadow: 0 1px 3px rgba(0,0,0,0.15); }
 .card h3 { margin: 0 0 0.5em 0; }
 .card p { margin: 0.25em 0; }
 .status-completed { color: #2e7d32; }
 .status-failed { color: #c62828; }
 .status-pending { color: #b28704; }
 .muted { color: #777; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Goal Tracker</h1>
<p class="muted">{{.Stats.Total}} goals: {{.Stats.Completed}} completed, {{.Stats.Failed}} failed, {{.Stats.InProgress}} in progress</p>

<h2>Goals</h2>
{{range .Goals}}
<div class="card">
  <h3>{{.Name}}</h3>
  <p>Due {{.DeadlineDate}} ({{.DaysLeft}} days left)</p>
  <p class="status-{{.Status}}">{{.Status}}</p>
</div>
{{else}}
<p class="muted">No goals yet.</p>
{{end}}

<h2>Daily Tasks</h2>
{{range .Tasks}}
<div class="card">
  <h3>{{.Name}}</h3>
  <p>Scheduled: {{range $i, $d := .ActiveDays}}{{if $i}}, {{end}}{{$d}}{{end}}</p>
  <p>{{if .CompletedToday}}Done today{{else if .ActiveToday}}Not done yet today{{else}}Not scheduled today{{end}}</p>
  <p class="muted">{{printf "%.0f" .CompletionRate}}% completed over the last {{$.RateWeeks}} weeks</p>
</div>
{{else}}
<p class="muted">No daily tasks yet.</p>
{{end}}
</body>
</html>
`
