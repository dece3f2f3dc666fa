package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "env-doc.config.json"

// Config represents the env-doc configuration file
type Config struct {
	Plugins []string     `json:"plugins" yaml:"plugins"`
	Input   InputConfig  `json:"input" yaml:"input"`
	Output  OutputConfig `json:"output" yaml:"output"`
	Scan    ScanConfig   `json:"scan" yaml:"scan"`
	Exclude []string     `json:"exclude,omitempty" yaml:"exclude"`
}

// InputConfig names the declaration files to document
type InputConfig struct {
	Files    []string `json:"files" yaml:"files"`       // Explicit declaration file paths
	Patterns []string `json:"patterns" yaml:"patterns"` // Globs expanded to declaration files
}

// OutputConfig controls the rendering target
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // md, json or html
	File   string `json:"file" yaml:"file"`     // Filename inside the output directory; empty = per-format default
}

// ScanConfig selects the files searched for variable usages
type ScanConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
	Ignore   []string `json:"ignore" yaml:"ignore"`
}

// Default returns the configuration used when a field (or a whole section)
// is absent from the config file.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Files: []string{".env"},
		},
		Output: OutputConfig{
			Format: "md",
		},
		Scan: ScanConfig{
			Patterns: []string{"**/*"},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"build/**",
				"dist/**",
				"bin/**",
				"out/**",
				".next/**",
				".cache/**",
			},
		},
	}
}

// Load reads and parses the configuration file at path. YAML files are
// detected by extension; everything else is parsed as JSON. A missing or
// malformed file is an error; the caller decides whether that is fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills unset sections from Default()
func (c *Config) applyDefaults() {
	def := Default()
	if len(c.Input.Files) == 0 && len(c.Input.Patterns) == 0 {
		c.Input.Files = def.Input.Files
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if len(c.Scan.Patterns) == 0 {
		c.Scan.Patterns = def.Scan.Patterns
	}
	if len(c.Scan.Ignore) == 0 {
		c.Scan.Ignore = def.Scan.Ignore
	}
}
