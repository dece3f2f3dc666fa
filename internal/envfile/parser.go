package envfile

import (
	"bufio"
	"io"
	"os"
	"path"
	"strings"
)

// Variable is a single declaration from an env-style file.
type Variable struct {
	Name        string // Unique within one file, case-sensitive
	Value       string // Raw text after the first '=', trimmed; may be empty
	Description string // Preceding comment lines joined by newlines; empty if none
}

// File holds the ordered variables parsed from one declaration file.
type File struct {
	Path string
	Vars []*Variable
}

// Add appends v, replacing an earlier declaration of the same name in place.
func (f *File) Add(v *Variable) {
	for i, existing := range f.Vars {
		if existing.Name == v.Name {
			f.Vars[i] = v
			return
		}
	}
	f.Vars = append(f.Vars, v)
}

// Lookup returns the variable with the given name, if declared.
func (f *File) Lookup(name string) (*Variable, bool) {
	for _, v := range f.Vars {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Names returns the declared names in declaration order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Vars))
	for _, v := range f.Vars {
		names = append(names, v.Name)
	}
	return names
}

// Filter returns a copy of f without the variables whose name matches any
// of the given wildcard patterns (filepath.Match syntax, e.g. "SECRET_*").
func (f *File) Filter(patterns []string) *File {
	if len(patterns) == 0 {
		return f
	}
	out := &File{Path: f.Path}
	for _, v := range f.Vars {
		if !matchesAny(v.Name, patterns) {
			out.Vars = append(out.Vars, v)
		}
	}
	return out
}

// Parse reads dotenv-style declarations from r.
//
// A line whose trimmed form starts with '#' adds to the pending comment
// block. A line containing '=' is split at the first '=' and emitted as a
// variable carrying the pending comments as its description; the pending
// block is then cleared. Any other line (blank or malformed) is skipped
// without clearing the pending block, so comments accumulate across blank
// lines until the next declaration.
func Parse(r io.Reader) ([]*Variable, error) {
	var vars []*Variable
	var pending []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			pending = append(pending, strings.TrimSpace(strings.TrimPrefix(line, "#")))
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		vars = append(vars, &Variable{
			Name:        key,
			Value:       strings.TrimSpace(value),
			Description: strings.Join(pending, "\n"),
		})
		pending = nil
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return vars, nil
}

// ParseFile parses the declaration file at path, dispatching on its
// filename to the matching format parser.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vars []*Variable
	switch detectFormat(path) {
	case formatShell:
		vars, err = parseShellExports(f)
	case formatCompose:
		vars, err = parseCompose(f)
	case formatK8s:
		vars, err = parseK8s(f)
	case formatSystemd:
		vars, err = parseSystemd(f)
	default:
		vars, err = Parse(f)
	}
	if err != nil {
		return nil, err
	}

	out := &File{Path: path}
	for _, v := range vars {
		out.Add(v)
	}
	return out, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
