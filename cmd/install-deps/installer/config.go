package installer

import (
	_ "embed"
	"os"
	"strings"

	"sqlihunt/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed deps.yaml
var defaultConfig []byte

// DefaultConfig returns the embedded tool list.
func DefaultConfig() (Config, error) {
	return parseConfig(defaultConfig)
}

// LoadConfig reads a deps.yaml file. An empty path yields the embedded list.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read %s", path)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "parse deps config"), errors.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects entries that cannot be installed.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Tools))
	for i, t := range c.Tools {
		if strings.TrimSpace(t.Name) == "" {
			return errors.Wrapf(errors.ErrInvalidInput, "tool #%d has no name", i+1)
		}
		if seen[t.Name] {
			return errors.Wrapf(errors.ErrInvalidInput, "tool %q listed twice", t.Name)
		}
		seen[t.Name] = true
		if t.Method != MethodGo && t.Method != MethodPip {
			return errors.Wrapf(errors.ErrInvalidInput, "tool %q: unknown method %q", t.Name, t.Method)
		}
		if t.Package == "" {
			return errors.Wrapf(errors.ErrInvalidInput, "tool %q: package is required", t.Name)
		}
	}
	return nil
}

// Select returns the tools named in names, in config order. Empty names
// selects every tool.
func (c Config) Select(names []string) ([]Tool, error) {
	if len(names) == 0 {
		return c.Tools, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	out := make([]Tool, 0, len(names))
	for _, t := range c.Tools {
		if want[t.Name] {
			out = append(out, t)
			delete(want, t.Name)
		}
	}
	for n := range want {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown tool %q", n)
	}
	return out, nil
}

// ExpandInstallDir resolves a leading $HOME or ~ in dir.
func ExpandInstallDir(dir string) (string, error) {
	switch {
	case strings.HasPrefix(dir, "$HOME"), strings.HasPrefix(dir, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		if strings.HasPrefix(dir, "$HOME") {
			return home + strings.TrimPrefix(dir, "$HOME"), nil
		}
		return home + strings.TrimPrefix(dir, "~"), nil
	}
	return dir, nil
}
