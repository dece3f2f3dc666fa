// Package discovery expands glob patterns into the ordered, deduplicated
// list of files the rest of the pipeline operates on.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// Discovery expands glob patterns against a fixed root directory. The root
// is explicit rather than implied by the process working directory so
// callers (and tests) can point it anywhere.
type Discovery struct {
	root   string
	ignore []string
}

// New returns a Discovery rooted at root. Files matching any ignore glob
// are dropped at expansion time and never appear in results.
func New(root string, ignore []string) *Discovery {
	return &Discovery{root: root, ignore: ignore}
}

// Root returns the directory patterns are expanded against.
func (d *Discovery) Root() string {
	return d.root
}

// Expand resolves every pattern against the root and unions the matches
// into a deduplicated list of slash-separated paths relative to the root.
// Order is deterministic: doublestar walks directories lexicographically
// and duplicates keep their first-seen position. A pattern matching zero
// files is not an error; a malformed pattern is.
func (d *Discovery) Expand(patterns []string) ([]string, error) {
	fsys := os.DirFS(d.root)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := fs.Stat(fsys, match)
			if err != nil || info.IsDir() {
				continue
			}
			if d.ignored(match) {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	return files, nil
}

// ignored reports whether the path matches any ignore glob, either by full
// relative path or by base name.
func (d *Discovery) ignored(p string) bool {
	for _, ig := range d.ignore {
		if doublestar.MatchUnvalidated(ig, p) {
			return true
		}
		if doublestar.MatchUnvalidated(ig, path.Base(p)) {
			return true
		}
	}
	return false
}
