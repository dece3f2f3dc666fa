// Package plugin implements the two-hook extension pipeline. Plugins are
// resolved through a static registry rather than loaded at runtime, so an
// unknown name is a typed error instead of a crash.
package plugin

import (
	"fmt"
	"sort"

	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/envfile"
)

// Plugin is constructed by a registered factory and given the host once at
// startup; during Apply it registers handlers on the extension points.
type Plugin interface {
	Apply(h *Host)
}

// Factory builds a plugin instance from the full configuration.
type Factory func(cfg *config.Config) (Plugin, error)

// LoadError reports a plugin that could not be resolved or constructed.
// Loading continues with the remaining plugins.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load plugin %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var registry = map[string]Factory{}

// Register adds a factory to the registry. Builtin plugins register
// themselves in init; applications may register their own before the host
// loads the configured list.
func Register(name string, f Factory) {
	registry[name] = f
}

// Registered returns the sorted names of all registered plugins.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BeforeParseFunc runs once per declaration file, after parsing and before
// exclusion filtering. It returns the (possibly replaced) file.
type BeforeParseFunc func(f *envfile.File) *envfile.File

// BeforeOutputFunc runs once after rendering, receiving the rendered text
// and the full per-file variable mapping. It returns the text to write.
type BeforeOutputFunc func(rendered string, all map[string]*envfile.File) string

// Host holds the handler chains for both extension points. Handlers run in
// registration order, each receiving the previous handler's output.
type Host struct {
	beforeParse  []BeforeParseFunc
	beforeOutput []BeforeOutputFunc
}

// NewHost returns an empty host.
func NewHost() *Host {
	return &Host{}
}

// OnBeforeParse appends a handler to the beforeParse chain.
func (h *Host) OnBeforeParse(fn BeforeParseFunc) {
	h.beforeParse = append(h.beforeParse, fn)
}

// OnBeforeOutput appends a handler to the beforeOutput chain.
func (h *Host) OnBeforeOutput(fn BeforeOutputFunc) {
	h.beforeOutput = append(h.beforeOutput, fn)
}

// Load resolves and applies the named plugins in order. Every failure is
// collected as a *LoadError; the remaining plugins still load.
func (h *Host) Load(names []string, cfg *config.Config) []error {
	var errs []error
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			errs = append(errs, &LoadError{Name: name, Err: fmt.Errorf("not registered")})
			continue
		}
		p, err := factory(cfg)
		if err != nil {
			errs = append(errs, &LoadError{Name: name, Err: err})
			continue
		}
		p.Apply(h)
	}
	return errs
}

// RunBeforeParse passes f through the beforeParse chain.
func (h *Host) RunBeforeParse(f *envfile.File) *envfile.File {
	for _, fn := range h.beforeParse {
		f = fn(f)
	}
	return f
}

// RunBeforeOutput passes the rendered text through the beforeOutput chain.
func (h *Host) RunBeforeOutput(rendered string, all map[string]*envfile.File) string {
	for _, fn := range h.beforeOutput {
		rendered = fn(rendered, all)
	}
	return rendered
}
