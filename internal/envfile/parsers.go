package envfile

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// format identifies which parser handles a declaration file.
type format int

const (
	formatDotEnv format = iota
	formatShell
	formatCompose
	formatK8s
	formatSystemd
)

// detectFormat picks a parser based on the filename
func detectFormat(path string) format {
	name := filepath.Base(path)

	switch {
	case name == ".envrc",
		strings.HasSuffix(name, ".sh"),
		strings.HasSuffix(name, ".bash"):
		return formatShell
	case strings.HasPrefix(name, ".env"), strings.HasSuffix(name, ".env"):
		return formatDotEnv
	case name == "docker-compose.yml", name == "docker-compose.yaml",
		strings.HasPrefix(name, "docker-compose."):
		return formatCompose
	case strings.HasSuffix(name, ".service"):
		return formatSystemd
	case strings.Contains(name, "configmap") || strings.Contains(name, "secret"):
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			return formatK8s
		}
	}
	return formatDotEnv
}

var exportRe = regexp.MustCompile(`^\s*export\s+([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// parseShellExports extracts `export VAR=value` lines from .envrc files and
// shell scripts. Shell formats carry no description comments.
func parseShellExports(r io.Reader) ([]*Variable, error) {
	var vars []*Variable

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := exportRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vars = append(vars, &Variable{
			Name:  m[1],
			Value: trimQuotes(strings.TrimSpace(m[2])),
		})
	}
	return vars, scanner.Err()
}

// parseCompose extracts service environment entries from docker-compose
// files. Both the map form and the KEY=VALUE list form are supported.
func parseCompose(r io.Reader) ([]*Variable, error) {
	var compose map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&compose); err != nil {
		return nil, nil // Not valid YAML, contribute nothing
	}

	collected := map[string]string{}
	services, _ := compose["services"].(map[string]interface{})
	for _, svc := range sortedValues(services) {
		svcMap, ok := svc.(map[string]interface{})
		if !ok {
			continue
		}
		switch env := svcMap["environment"].(type) {
		case map[string]interface{}:
			for k, v := range env {
				collected[k] = fmt.Sprintf("%v", v)
			}
		case []interface{}:
			for _, item := range env {
				s, ok := item.(string)
				if !ok {
					continue
				}
				if k, v, ok := strings.Cut(s, "="); ok {
					collected[strings.TrimSpace(k)] = strings.TrimSpace(v)
				}
			}
		}
	}
	return sortedVars(collected), nil
}

// parseK8s extracts data entries from Kubernetes ConfigMap and Secret
// manifests. Secret values are base64-decoded when possible.
func parseK8s(r io.Reader) ([]*Variable, error) {
	var obj map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&obj); err != nil {
		return nil, nil
	}

	kind, _ := obj["kind"].(string)
	if kind != "ConfigMap" && kind != "Secret" {
		return nil, nil
	}
	data, _ := obj["data"].(map[string]interface{})

	collected := map[string]string{}
	for k, v := range data {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if kind == "Secret" {
			if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
				s = string(decoded)
			}
		}
		collected[k] = s
	}
	return sortedVars(collected), nil
}

var systemdEnvRe = regexp.MustCompile(`^\s*Environment\s*=\s*(.+)$`)

// parseSystemd extracts Environment= entries from systemd unit files
func parseSystemd(r io.Reader) ([]*Variable, error) {
	var vars []*Variable

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := systemdEnvRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entry := trimQuotes(strings.TrimSpace(m[1]))
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		vars = append(vars, &Variable{Name: k, Value: strings.TrimSpace(v)})
	}
	return vars, scanner.Err()
}

// trimQuotes removes one matching pair of surrounding quotes
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// sortedVars converts a map to name-sorted variables. YAML maps have no
// stable iteration order, so map-based formats sort by name to keep repeat
// runs byte-identical.
func sortedVars(m map[string]string) []*Variable {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	vars := make([]*Variable, 0, len(names))
	for _, name := range names {
		vars = append(vars, &Variable{Name: name, Value: m[name]})
	}
	return vars
}

func sortedValues(m map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, m[k])
	}
	return vals
}
