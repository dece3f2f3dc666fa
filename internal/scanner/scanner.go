// Package scanner counts textual usages of declared variable names in file
// contents. Detection is heuristic by design: an ordered list of regular
// expression templates, applied independently per variable and summed, with
// the list open to extension as new access idioms appear in the wild.
package scanner

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern templates. The %s placeholder is replaced with the quoted
// variable name before compiling. Every template anchors the name on
// identifier boundaries, so API_KEY never counts API_KEY_BACKUP.
var (
	// DefaultPatterns cover direct property access, bracket access with
	// either quote style, and call-style lookup idioms.
	DefaultPatterns = []string{
		`\benv\.%s\b`,
		`\benv\[\s*'%s'\s*\]`,
		`\benv\[\s*"%s"\s*\]`,
		`\bGetenv\(\s*"%s"\s*\)`,
		`\benv\(\s*['"]%s['"]\s*\)`,
	}

	// AuditPatterns are the three fixed patterns used by the usage-audit
	// mode: dot access plus single- and double-quoted bracket access.
	AuditPatterns = []string{
		`\benv\.%s\b`,
		`\benv\[\s*'%s'\s*\]`,
		`\benv\[\s*"%s"\s*\]`,
	}
)

// Occurrence records the match count for one variable in one scanned file.
type Occurrence struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// Usage aggregates all occurrences of one variable. Total always equals
// the sum of the per-occurrence counts; occurrence order is the order the
// files were scanned in.
type Usage struct {
	Total       int          `json:"total"`
	Occurrences []Occurrence `json:"occurrences"`
}

// Record appends one occurrence and updates the total. Zero and negative
// counts are ignored.
func (u *Usage) Record(file string, count int) {
	if count <= 0 {
		return
	}
	u.Total += count
	u.Occurrences = append(u.Occurrences, Occurrence{File: file, Count: count})
}

// Scanner holds the pattern template list
type Scanner struct {
	patterns []string
}

// New returns a scanner with the default pattern set.
func New() *Scanner {
	return &Scanner{patterns: DefaultPatterns}
}

// SetPatterns replaces the pattern template list.
func (s *Scanner) SetPatterns(patterns []string) {
	s.patterns = patterns
}

// AddPatterns appends pattern templates to the list.
func (s *Scanner) AddPatterns(patterns ...string) {
	s.patterns = append(s.patterns, patterns...)
}

// Compile builds a Matcher for the given variable names. Every template is
// instantiated once per name; an invalid template is an error.
func (s *Scanner) Compile(names []string) (*Matcher, error) {
	m := &Matcher{regexps: make(map[string][]*regexp.Regexp, len(names))}
	for _, name := range names {
		if _, ok := m.regexps[name]; ok {
			continue
		}
		quoted := regexp.QuoteMeta(name)
		res := make([]*regexp.Regexp, 0, len(s.patterns))
		for _, tmpl := range s.patterns {
			re, err := regexp.Compile(strings.ReplaceAll(tmpl, "%s", quoted))
			if err != nil {
				return nil, fmt.Errorf("invalid usage pattern %q: %w", tmpl, err)
			}
			res = append(res, re)
		}
		m.names = append(m.names, name)
		m.regexps[name] = res
	}
	return m, nil
}

// Matcher is a compiled pattern set for a fixed list of variable names.
type Matcher struct {
	names   []string
	regexps map[string][]*regexp.Regexp
}

// Count returns the per-variable match counts in content. Patterns are
// applied independently and their non-overlapping match counts summed.
// Names with zero matches are omitted.
func (m *Matcher) Count(content []byte) map[string]int {
	counts := make(map[string]int)
	for _, name := range m.names {
		n := 0
		for _, re := range m.regexps[name] {
			n += len(re.FindAllIndex(content, -1))
		}
		if n > 0 {
			counts[name] = n
		}
	}
	return counts
}

// binaryExts lists extensions never worth scanning
var binaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".ico": true, ".mp4": true, ".mp3": true,
}

// IsBinary reports whether a file should be skipped as binary, judged by
// extension or by a NUL byte in the first 512 bytes of content.
func IsBinary(path string, content []byte) bool {
	if binaryExts[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.IndexByte(head, 0) >= 0
}
