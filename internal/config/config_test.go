package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "env-doc.config.json", `{
  "plugins": ["toc"],
  "input": { "files": [".env"], "patterns": ["config/*.env"] },
  "output": { "format": "html", "file": "vars.html" },
  "scan": { "patterns": ["src/**"], "ignore": ["src/gen/**"] },
  "exclude": ["SECRET_*"]
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := &Config{
		Plugins: []string{"toc"},
		Input:   InputConfig{Files: []string{".env"}, Patterns: []string{"config/*.env"}},
		Output:  OutputConfig{Format: "html", File: "vars.html"},
		Scan:    ScanConfig{Patterns: []string{"src/**"}, Ignore: []string{"src/gen/**"}},
		Exclude: []string{"SECRET_*"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "env-doc.config.yaml", `
plugins:
  - usage-summary
input:
  files:
    - .env
output:
  format: json
scan:
  patterns:
    - "**/*.go"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected format json, got %q", cfg.Output.Format)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0] != "usage-summary" {
		t.Errorf("Expected plugins [usage-summary], got %v", cfg.Plugins)
	}
	if len(cfg.Scan.Ignore) == 0 {
		t.Error("Expected default scan ignore list to be applied")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, "env-doc.config.json", `{}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if diff := cmp.Diff(def.Input.Files, cfg.Input.Files); diff != "" {
		t.Errorf("Input files (-want +got):\n%s", diff)
	}
	if cfg.Output.Format != def.Output.Format {
		t.Errorf("Expected default format %q, got %q", def.Output.Format, cfg.Output.Format)
	}
	if diff := cmp.Diff(def.Scan.Patterns, cfg.Scan.Patterns); diff != "" {
		t.Errorf("Scan patterns (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Expected error for missing config")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "env-doc.config.json", `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed config")
	}
}
