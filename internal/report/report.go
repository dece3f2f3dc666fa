// Package report renders the variable-to-usage aggregate into Markdown,
// JSON or HTML documentation.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jenian/envdoc/internal/scanner"
)

// Format selects the output renderer.
type Format string

const (
	Markdown Format = "md"
	JSON     Format = "json"
	HTML     Format = "html"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "html":
		return HTML, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected md, json or html)", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// DefaultFilename is the output name used when the configuration does not
// set one.
func (f Format) DefaultFilename() string {
	return "env-doc." + f.Ext()
}

// Entry is one documented variable with its usage aggregate.
type Entry struct {
	Name        string
	Value       string
	Description string
	Usage       scanner.Usage
}

// Report is the ordered aggregate handed to the renderers. Entry order is
// preserved by every format, including JSON key order.
type Report struct {
	Title   string
	Entries []Entry
}

// Render renders the report in the requested format.
func (r *Report) Render(f Format) (string, error) {
	switch f {
	case Markdown:
		return r.renderMarkdown(), nil
	case JSON:
		return r.renderJSON()
	case HTML:
		return r.renderHTML()
	}
	return "", fmt.Errorf("unknown output format %q", f)
}

// title returns the configured title or the default
func (r *Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Environment Variables"
}

// WriteFile writes rendered output, creating missing parent directories.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
