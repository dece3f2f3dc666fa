package report

import (
	"html/template"
	"strings"
)

// The document is rendered through html/template so variable names, values
// and descriptions are always escaped, whatever they contain.
var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
section { border-bottom: 1px solid #ddd; padding: 0.5rem 0; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
.unused { color: #b45309; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Entries}}
<section>
<h2>{{.Name}}</h2>
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
<p>Default: <code>{{.Value}}</code></p>
{{- if .Usage.Total}}
<p>Usages: {{.Usage.Total}}</p>
<ul>
{{- range .Usage.Occurrences}}
<li><code>{{.File}}</code> ({{.Count}} occurrences)</li>
{{- end}}
</ul>
{{- else}}
<p class="unused">&#9888; Unused: no references found in the scanned files.</p>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

func (r *Report) renderHTML() (string, error) {
	entries := make([]Entry, len(r.Entries))
	copy(entries, r.Entries)
	for i := range entries {
		entries[i].Value = displayValue(entries[i].Value)
	}

	var b strings.Builder
	err := htmlTmpl.Execute(&b, struct {
		Title   string
		Entries []Entry
	}{Title: r.title(), Entries: entries})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
