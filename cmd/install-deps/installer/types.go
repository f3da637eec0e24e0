package installer

import (
	"time"
)

// Method selects how a tool is installed.
type Method string

const (
	MethodGo  Method = "go"
	MethodPip Method = "pip"
)

// Config is the deps.yaml document.
type Config struct {
	InstallDirectory string   `yaml:"install_directory"`
	Go               GoConfig `yaml:"go"`
	Tools            []Tool   `yaml:"tools"`
}

// GoConfig constrains the Go toolchain used for "go install".
type GoConfig struct {
	MinVersion string `yaml:"min_version"`
}

// Tool describes one external binary.
type Tool struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Required    bool        `yaml:"required"`
	Method      Method      `yaml:"method"`
	Package     string      `yaml:"package"`
	Version     string      `yaml:"version"`
	HealthCheck HealthCheck `yaml:"health_check"`
}

// HealthCheck runs the installed binary to confirm it works.
// Empty Args skips the check beyond the PATH lookup.
type HealthCheck struct {
	Args             []string `yaml:"args"`
	ExpectedContains string   `yaml:"expected_contains"`
}

// Status is the outcome for a single tool.
type Status string

const (
	StatusInstalled Status = "installed"
	StatusMissing   Status = "missing"
	StatusBroken    Status = "broken"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Result reports what happened to one tool.
type Result struct {
	Tool     Tool
	Status   Status
	Path     string
	Version  string
	Err      error
	Duration time.Duration
}

// OK reports whether the tool is usable after the operation.
func (r Result) OK() bool {
	return r.Status == StatusInstalled || r.Status == StatusDone
}
