package report

import (
	"bytes"
	"encoding/json"

	"github.com/jenian/envdoc/internal/scanner"
)

// EntryJSON is the wire shape of one variable in JSON output. Exported so
// consumers can round-trip the report.
type EntryJSON struct {
	Value       string        `json:"value"`
	Description string        `json:"description"`
	Usage       scanner.Usage `json:"usage"`
}

// renderJSON serializes the report as a single object whose key order
// matches entry order. encoding/json maps would sort keys, so the object
// is assembled by hand and pretty-printed with json.Indent, which keeps
// the original ordering.
func (r *Report) renderJSON() (string, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(e.Name)
		if err != nil {
			return "", err
		}

		usage := e.Usage
		if usage.Occurrences == nil {
			usage.Occurrences = []scanner.Occurrence{}
		}
		val, err := json.Marshal(EntryJSON{
			Value:       e.Value,
			Description: e.Description,
			Usage:       usage,
		})
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
