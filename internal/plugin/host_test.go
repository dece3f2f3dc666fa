package plugin

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/envfile"
)

// testPlugin registers simple handlers for inspection
type testPlugin struct {
	tag string
}

func (p *testPlugin) Apply(h *Host) {
	h.OnBeforeOutput(func(rendered string, all map[string]*envfile.File) string {
		return rendered + p.tag
	})
}

func TestHost_LoadUnknownPlugin(t *testing.T) {
	h := NewHost()
	errs := h.Load([]string{"does-not-exist"}, config.Default())
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}

	var loadErr *LoadError
	if !errors.As(errs[0], &loadErr) {
		t.Fatalf("Expected *LoadError, got %T", errs[0])
	}
	if loadErr.Name != "does-not-exist" {
		t.Errorf("Expected plugin name in error, got %q", loadErr.Name)
	}
}

func TestHost_LoadFactoryError(t *testing.T) {
	Register("broken-test", func(cfg *config.Config) (Plugin, error) {
		return nil, fmt.Errorf("constructor exploded")
	})
	Register("after-broken-test", func(cfg *config.Config) (Plugin, error) {
		return &testPlugin{tag: "|ok"}, nil
	})

	h := NewHost()
	errs := h.Load([]string{"broken-test", "after-broken-test"}, config.Default())
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", len(errs), errs)
	}

	// The failing plugin is skipped; the next one still loads
	out := h.RunBeforeOutput("base", nil)
	if out != "base|ok" {
		t.Errorf("Expected remaining plugin to load, got %q", out)
	}
}

func TestHost_ChainRunsInRegistrationOrder(t *testing.T) {
	Register("chain-a-test", func(cfg *config.Config) (Plugin, error) {
		return &testPlugin{tag: "|a"}, nil
	})
	Register("chain-b-test", func(cfg *config.Config) (Plugin, error) {
		return &testPlugin{tag: "|b"}, nil
	})

	h := NewHost()
	if errs := h.Load([]string{"chain-a-test", "chain-b-test"}, config.Default()); len(errs) != 0 {
		t.Fatalf("Load failed: %v", errs)
	}

	out := h.RunBeforeOutput("base", nil)
	if out != "base|a|b" {
		t.Errorf("Expected handlers chained in order, got %q", out)
	}
}

func TestHost_BeforeOutputCanReplaceEverything(t *testing.T) {
	h := NewHost()
	h.OnBeforeOutput(func(rendered string, all map[string]*envfile.File) string {
		return "REPLACED"
	})
	if out := h.RunBeforeOutput("original markdown", nil); out != "REPLACED" {
		t.Errorf("Expected full replacement, got %q", out)
	}
}

func TestHost_BeforeParseChain(t *testing.T) {
	h := NewHost()
	h.OnBeforeParse(func(f *envfile.File) *envfile.File {
		f.Vars = append(f.Vars, &envfile.Variable{Name: "ADDED"})
		return f
	})
	h.OnBeforeParse(func(f *envfile.File) *envfile.File {
		for _, v := range f.Vars {
			v.Value = "mutated"
		}
		return f
	})

	f := h.RunBeforeParse(&envfile.File{})
	if len(f.Vars) != 1 || f.Vars[0].Name != "ADDED" || f.Vars[0].Value != "mutated" {
		t.Errorf("Expected chained mutation, got %+v", f.Vars)
	}
}

func TestRegistered_IncludesBuiltins(t *testing.T) {
	names := strings.Join(Registered(), ",")
	for _, builtin := range []string{"usage-summary", "toc", "redact-values"} {
		if !strings.Contains(names, builtin) {
			t.Errorf("Expected builtin %q in registry, got %s", builtin, names)
		}
	}
}

func TestBuiltin_RedactValues(t *testing.T) {
	h := NewHost()
	if errs := h.Load([]string{"redact-values"}, config.Default()); len(errs) != 0 {
		t.Fatalf("Load failed: %v", errs)
	}

	f := h.RunBeforeParse(&envfile.File{Vars: []*envfile.Variable{
		{Name: "SECRET_TOKEN", Value: "supersecret"},
		{Name: "API_PASSWORD", Value: "abc"},
		{Name: "PORT", Value: "8080"},
	}})

	if f.Vars[0].Value != "su****" {
		t.Errorf("SECRET_TOKEN: expected redacted value, got %q", f.Vars[0].Value)
	}
	if f.Vars[1].Value != "****" {
		t.Errorf("API_PASSWORD: expected short value fully masked, got %q", f.Vars[1].Value)
	}
	if f.Vars[2].Value != "8080" {
		t.Errorf("PORT: expected value untouched, got %q", f.Vars[2].Value)
	}
}

func TestBuiltin_Toc(t *testing.T) {
	h := NewHost()
	if errs := h.Load([]string{"toc"}, config.Default()); len(errs) != 0 {
		t.Fatalf("Load failed: %v", errs)
	}

	rendered := "# Title\n\n## API_KEY\n\n## DB_HOST\n"
	out := h.RunBeforeOutput(rendered, nil)
	if !strings.HasPrefix(out, "## Contents\n") {
		t.Errorf("Expected table of contents prepended:\n%s", out)
	}
	if !strings.Contains(out, "- [API_KEY](#api_key)") {
		t.Errorf("Expected API_KEY link in contents:\n%s", out)
	}

	// No headings means no contents block
	if out := h.RunBeforeOutput("plain text", nil); out != "plain text" {
		t.Errorf("Expected output without headings untouched, got %q", out)
	}
}

func TestBuiltin_UsageSummary(t *testing.T) {
	h := NewHost()
	if errs := h.Load([]string{"usage-summary"}, config.Default()); len(errs) != 0 {
		t.Fatalf("Load failed: %v", errs)
	}

	all := map[string]*envfile.File{
		".env":       {Vars: []*envfile.Variable{{Name: "A"}, {Name: "B"}}},
		".env.local": {Vars: []*envfile.Variable{{Name: "B"}, {Name: "C"}}},
	}
	out := h.RunBeforeOutput("report", all)
	if !strings.Contains(out, "3 variable(s) documented from 2 declaration file(s)") {
		t.Errorf("Expected summary appended:\n%s", out)
	}
}
