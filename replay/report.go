package replay

import (
	"fmt"
	"io"
	"text/template"
)

const reportTemplate = `
# Replay Report: {{.Script}}

## Run
- **Ticks:** {{.Ticks}} at {{printf "%.5f" .DT}}s
- **Wall Time:** {{.Elapsed}}

## Final State
- **State:** {{.State}}
- **Position:** I={{f4 .I}} J={{f4 .J}}

## Clip Switches ({{.SwitchCount}})
{{- range .Switches}}
- tick {{.Tick}}: {{.State}} -> {{.Clip}}{{if .Startup}} (startup){{end}}
{{- end}}

## Systems
{{- range .Stats.Systems}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}
`

var reportFuncs = template.FuncMap{
	"f4": func(v float32) string {
		return fmt.Sprintf("%.4f", v)
	},
}

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Result) Report(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
