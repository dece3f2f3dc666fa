// Package pipeline drives the full documentation run: configuration,
// plugins, discovery, parsing, scanning, rendering and the final write,
// in that fixed order.
package pipeline

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/console"
	"github.com/jenian/envdoc/internal/discovery"
	"github.com/jenian/envdoc/internal/envfile"
	"github.com/jenian/envdoc/internal/plugin"
	"github.com/jenian/envdoc/internal/report"
	"github.com/jenian/envdoc/internal/scanner"
)

// scanWorkers bounds concurrent file reads during usage scanning.
const scanWorkers = 10

// Options configures one documentation run.
type Options struct {
	ConfigPath string // Configuration file path
	OutputDir  string // Directory the rendered file is written into
	WorkDir    string // Root all relative paths resolve against; empty = "."
}

// Run executes the pipeline. Only configuration load and the final write
// are fatal; every other failure is reported and skipped.
func Run(opts Options) error {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return &ConfigError{Path: opts.ConfigPath, Err: err}
	}

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return &ConfigError{Path: opts.ConfigPath, Err: err}
	}

	host := plugin.NewHost()
	for _, loadErr := range host.Load(cfg.Plugins, cfg) {
		console.Warnf("%v", loadErr)
	}

	all, order, err := parseDeclarations(cfg, host, workDir)
	if err != nil {
		return err
	}

	entries := mergeVariables(all, order)
	if err := scanUsages(cfg, workDir, entries); err != nil {
		return err
	}

	rep := &report.Report{Entries: entries}
	rendered, err := rep.Render(format)
	if err != nil {
		return err
	}
	rendered = host.RunBeforeOutput(rendered, all)

	outName := cfg.Output.File
	if outName == "" {
		outName = format.DefaultFilename()
	}
	outDir := opts.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	outPath := filepath.Join(outDir, outName)

	if err := report.WriteFile(outPath, rendered); err != nil {
		return &OutputWriteError{Path: outPath, Err: err}
	}

	console.Successf("wrote %s (%d variables)", outPath, len(entries))
	return nil
}

// parseDeclarations expands the input sources, parses each declaration
// file, runs the beforeParse chain and applies exclude patterns. An
// unreadable file contributes an empty mapping and the run continues.
func parseDeclarations(cfg *config.Config, host *plugin.Host, workDir string) (map[string]*envfile.File, []string, error) {
	paths := make([]string, 0, len(cfg.Input.Files))
	seen := make(map[string]bool)
	for _, p := range cfg.Input.Files {
		p = filepath.ToSlash(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if len(cfg.Input.Patterns) > 0 {
		matches, err := discovery.New(workDir, nil).Expand(cfg.Input.Patterns)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range matches {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}

	all := make(map[string]*envfile.File, len(paths))
	for _, p := range paths {
		f, err := envfile.ParseFile(filepath.Join(workDir, filepath.FromSlash(p)))
		if err != nil {
			console.Warnf("failed to read declaration file %s: %v", p, err)
			f = &envfile.File{}
		}
		f.Path = p

		f = host.RunBeforeParse(f)
		f = f.Filter(cfg.Exclude)
		all[p] = f
	}
	return all, paths, nil
}

// mergeVariables flattens the per-file mappings into ordered report
// entries. A name declared in several files keeps its first-seen position;
// later declarations override value and description, matching declaration
// file precedence.
func mergeVariables(all map[string]*envfile.File, order []string) []report.Entry {
	var entries []report.Entry
	index := make(map[string]int)
	for _, path := range order {
		for _, v := range all[path].Vars {
			if i, ok := index[v.Name]; ok {
				entries[i].Value = v.Value
				entries[i].Description = v.Description
				continue
			}
			index[v.Name] = len(entries)
			entries = append(entries, report.Entry{
				Name:        v.Name,
				Value:       v.Value,
				Description: v.Description,
			})
		}
	}
	return entries
}

// scanUsages expands the scan patterns and counts usages of every entry's
// name, filling in the usage aggregates in place. Files are read on a
// bounded worker pool; results land in index-addressed slots so the merge
// stays in discovery order.
func scanUsages(cfg *config.Config, workDir string, entries []report.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	files, err := discovery.New(workDir, cfg.Scan.Ignore).Expand(cfg.Scan.Patterns)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	matcher, err := scanner.New().Compile(names)
	if err != nil {
		return err
	}

	results := make([]map[string]int, len(files))
	var wg sync.WaitGroup
	workers := make(chan struct{}, scanWorkers)

	for i, file := range files {
		wg.Add(1)
		workers <- struct{}{}

		go func(slot int, path string) {
			defer wg.Done()
			defer func() { <-workers }()

			content, err := os.ReadFile(filepath.Join(workDir, filepath.FromSlash(path)))
			if err != nil {
				console.Warnf("failed to read %s: %v", path, err)
				return
			}
			if scanner.IsBinary(path, content) {
				console.Warnf("skipping binary file %s", path)
				return
			}
			results[slot] = matcher.Count(content)
		}(i, file)
	}
	wg.Wait()

	usages := make(map[string]*scanner.Usage, len(entries))
	for i := range entries {
		usages[entries[i].Name] = &entries[i].Usage
	}
	for i, file := range files {
		for name, count := range results[i] {
			usages[name].Record(file, count)
		}
	}
	return nil
}
