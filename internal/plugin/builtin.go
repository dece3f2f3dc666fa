package plugin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/envfile"
)

func init() {
	Register("usage-summary", func(cfg *config.Config) (Plugin, error) {
		return &usageSummary{}, nil
	})
	Register("toc", func(cfg *config.Config) (Plugin, error) {
		return &tableOfContents{}, nil
	})
	Register("redact-values", func(cfg *config.Config) (Plugin, error) {
		return &redactValues{}, nil
	})
}

// usageSummary appends a variable/file tally to the rendered output.
type usageSummary struct{}

func (p *usageSummary) Apply(h *Host) {
	h.OnBeforeOutput(func(rendered string, all map[string]*envfile.File) string {
		names := make(map[string]bool)
		files := make([]string, 0, len(all))
		for path, f := range all {
			files = append(files, path)
			for _, v := range f.Vars {
				names[v.Name] = true
			}
		}
		sort.Strings(files)

		summary := fmt.Sprintf("\n---\n\n%d variable(s) documented from %d declaration file(s).\n",
			len(names), len(files))
		return rendered + summary
	})
}

// tableOfContents prepends a linked list of H2 sections to Markdown
// output. Output without any H2 heading is left untouched.
type tableOfContents struct{}

func (p *tableOfContents) Apply(h *Host) {
	h.OnBeforeOutput(func(rendered string, all map[string]*envfile.File) string {
		var headings []string
		for _, line := range strings.Split(rendered, "\n") {
			if strings.HasPrefix(line, "## ") {
				headings = append(headings, strings.TrimPrefix(line, "## "))
			}
		}
		if len(headings) == 0 {
			return rendered
		}

		var b strings.Builder
		b.WriteString("## Contents\n\n")
		for _, heading := range headings {
			fmt.Fprintf(&b, "- [%s](#%s)\n", heading, anchor(heading))
		}
		b.WriteString("\n")
		return b.String() + rendered
	})
}

// anchor converts a heading to a GitHub-style fragment id
func anchor(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// redactValues blanks the default value of secret-looking variables before
// they reach the renderer.
type redactValues struct{}

var secretMarkers = []string{"SECRET", "TOKEN", "PASSWORD", "PRIVATE", "CREDENTIAL"}

func (p *redactValues) Apply(h *Host) {
	h.OnBeforeParse(func(f *envfile.File) *envfile.File {
		for _, v := range f.Vars {
			if v.Value == "" {
				continue
			}
			for _, marker := range secretMarkers {
				if strings.Contains(strings.ToUpper(v.Name), marker) {
					v.Value = redact(v.Value)
					break
				}
			}
		}
		return f
	})
}

// redact keeps a short prefix so values stay recognizable in review
func redact(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:2] + "****"
}
