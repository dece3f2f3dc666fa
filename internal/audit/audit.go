// Package audit implements the standalone usage-audit mode: one
// declaration file, three fixed usage patterns, one report written to the
// working directory. It shares the parsing and scanning logic with the
// main pipeline but has no plugin system and its own simpler renderer.
package audit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/console"
	"github.com/jenian/envdoc/internal/discovery"
	"github.com/jenian/envdoc/internal/envfile"
	"github.com/jenian/envdoc/internal/report"
	"github.com/jenian/envdoc/internal/scanner"
)

// Options configures one audit run.
type Options struct {
	EnvFile string        // Declaration file; missing is fatal
	Format  report.Format // md, json or html
	Ignore  []string      // Extra ignore globs on top of the defaults
	WorkDir string        // Scan root; empty = "."
}

// Result is one audited variable.
type Result struct {
	Name  string
	Value string
	Usage scanner.Usage
}

// Run parses the declaration file, scans the tree and writes
// env-usage.<ext> into the working directory.
func Run(opts Options) error {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	f, err := envfile.ParseFile(opts.EnvFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.EnvFile, err)
	}
	if len(f.Vars) == 0 {
		console.Warnf("%s declares no variables", opts.EnvFile)
	}

	results, err := Scan(f, workDir, opts.Ignore)
	if err != nil {
		return err
	}

	rendered, err := render(results, opts.Format)
	if err != nil {
		return err
	}

	outPath := filepath.Join(workDir, "env-usage."+opts.Format.Ext())
	if err := report.WriteFile(outPath, rendered); err != nil {
		return err
	}

	console.Successf("wrote %s (%d variables)", outPath, len(results))
	return nil
}

// Scan counts usages of every variable in f across the tree under
// workDir, excluding the default ignore set plus any extra globs. Files
// are read sequentially; the audit mode keeps the simple baseline.
func Scan(f *envfile.File, workDir string, extraIgnore []string) ([]Result, error) {
	ignore := append(append([]string{}, config.Default().Scan.Ignore...), extraIgnore...)
	files, err := discovery.New(workDir, ignore).Expand([]string{"**/*"})
	if err != nil {
		return nil, err
	}

	s := scanner.New()
	s.SetPatterns(scanner.AuditPatterns)
	matcher, err := s.Compile(f.Names())
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(f.Vars))
	usages := make(map[string]*scanner.Usage, len(f.Vars))
	for i, v := range f.Vars {
		results[i] = Result{Name: v.Name, Value: v.Value}
		usages[v.Name] = &results[i].Usage
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(workDir, filepath.FromSlash(file)))
		if err != nil {
			console.Warnf("failed to read %s: %v", file, err)
			continue
		}
		if scanner.IsBinary(file, content) {
			continue
		}
		for name, count := range matcher.Count(content) {
			usages[name].Record(file, count)
		}
	}
	return results, nil
}
