package report

import (
	"fmt"
	"strings"
)

// renderMarkdown produces one H1 plus an H2 section per variable.
func (r *Report) renderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", r.title())

	for _, e := range r.Entries {
		fmt.Fprintf(&b, "\n## %s\n\n", e.Name)

		if e.Description != "" {
			b.WriteString(e.Description)
			b.WriteString("\n\n")
		}

		fmt.Fprintf(&b, "- Default: `%s`\n", displayValue(e.Value))
		fmt.Fprintf(&b, "- Usages: %d\n", e.Usage.Total)

		if e.Usage.Total == 0 {
			b.WriteString("\n⚠️ **Unused**: no references found in the scanned files.\n")
			continue
		}

		b.WriteString("\n")
		for _, occ := range e.Usage.Occurrences {
			fmt.Fprintf(&b, "- `%s` (%d %s)\n", occ.File, occ.Count, pluralize(occ.Count, "occurrence"))
		}
	}

	return b.String()
}

// displayValue keeps empty defaults visible in the rendered output
func displayValue(v string) string {
	if v == "" {
		return "(empty)"
	}
	return v
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
