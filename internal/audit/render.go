package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/jenian/envdoc/internal/report"
	"github.com/jenian/envdoc/internal/scanner"
)

func render(results []Result, format report.Format) (string, error) {
	switch format {
	case report.Markdown:
		return renderMarkdown(results), nil
	case report.JSON:
		return renderJSON(results)
	case report.HTML:
		return renderHTML(results)
	}
	return "", fmt.Errorf("unknown output format %q", format)
}

func renderMarkdown(results []Result) string {
	var b strings.Builder
	b.WriteString("# Environment Variable Usage\n")

	for _, r := range results {
		fmt.Fprintf(&b, "\n## %s\n\n", r.Name)
		fmt.Fprintf(&b, "- Default: `%s`\n", r.Value)
		if r.Usage.Total == 0 {
			b.WriteString("- Usages: 0 (unused)\n")
			continue
		}
		fmt.Fprintf(&b, "- Usages: %d\n", r.Usage.Total)
		for _, occ := range r.Usage.Occurrences {
			fmt.Fprintf(&b, "  - `%s` (%d)\n", occ.File, occ.Count)
		}
	}
	return b.String()
}

type resultJSON struct {
	Value       string               `json:"value"`
	Total       int                  `json:"total"`
	Occurrences []scanner.Occurrence `json:"occurrences"`
}

func renderJSON(results []Result) (string, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, r := range results {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return "", err
		}
		occ := r.Usage.Occurrences
		if occ == nil {
			occ = []scanner.Occurrence{}
		}
		val, err := json.Marshal(resultJSON{Value: r.Value, Total: r.Usage.Total, Occurrences: occ})
		if err != nil {
			return "", err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, b.Bytes(), "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

var htmlTmpl = template.Must(template.New("audit").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Environment Variable Usage</title>
<style>
body { font-family: sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 0.4rem; text-align: left; }
.unused { color: #b45309; }
</style>
</head>
<body>
<h1>Environment Variable Usage</h1>
<table>
<tr><th>Variable</th><th>Default</th><th>Usages</th><th>Locations</th></tr>
{{- range .}}
<tr>
<td>{{.Name}}</td>
<td><code>{{.Value}}</code></td>
{{- if .Usage.Total}}
<td>{{.Usage.Total}}</td>
<td>{{range .Usage.Occurrences}}<code>{{.File}}</code> ({{.Count}})<br>{{end}}</td>
{{- else}}
<td class="unused">0 (unused)</td>
<td></td>
{{- end}}
</tr>
{{- end}}
</table>
</body>
</html>
`))

func renderHTML(results []Result) (string, error) {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, results); err != nil {
		return "", err
	}
	return b.String(), nil
}
