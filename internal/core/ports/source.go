// internal/core/ports/source.go
package ports

import (
	"context"
	"time"

	"sqlihunt/internal/core/domain"
)

// Enumerator is one external recon stage (subdomain enumeration, liveness
// probing, crawling, archive lookup). Implementations are black boxes that
// turn the previous stage's lines into new lines.
type Enumerator interface {
	// Name returns the tool name ("subfinder", "httpx", ...).
	Name() string

	// Run executes the tool. input holds the previous stage's lines and is
	// nil for the first stage, which works from target alone.
	Run(ctx context.Context, target domain.Target, input []string) ([]string, error)
}

// Initializer is implemented by tools that can verify their binary before a
// run starts (PATH lookup, version probe).
type Initializer interface {
	Initialize() error
}

// ToolConfig configures one external binary.
type ToolConfig struct {
	// ExecPath is the binary name or path, resolved through PATH.
	ExecPath string `yaml:"path"`

	// Args are appended after the built-in arguments.
	Args []string `yaml:"args"`

	// Timeout bounds a single run; zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	// Extra holds tool-specific knobs (katana "depth", subfinder "all").
	Extra map[string]interface{} `yaml:"extra"`
}

// ToolMetadata describes a registered tool adapter.
type ToolMetadata struct {
	Name        string
	Description string
	InstallHint string

	// Output is the artifact the tool's lines are stored under.
	Output domain.ArtifactName

	// Optional tools may fail without aborting the run.
	Optional bool
}

// DefaultToolConfig returns a config running name from PATH with no timeout.
func DefaultToolConfig(name string) ToolConfig {
	return ToolConfig{ExecPath: name}
}
