// internal/platform/registry/tool_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
)

// ToolFactory builds an enumerator from its config.
type ToolFactory func(cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error)

// ToolRegistry maps tool names to factories. Adapter packages register
// themselves from init so the binary only links what it imports.
type ToolRegistry struct {
	mu        sync.RWMutex
	factories map[string]ToolFactory
	metadata  map[string]ports.ToolMetadata
	logger    logx.Logger
}

var (
	globalRegistry *ToolRegistry
	once           sync.Once
)

// Global returns the process-wide registry.
func Global() *ToolRegistry {
	once.Do(func() {
		globalRegistry = NewToolRegistry(logx.NewSilent())
	})
	return globalRegistry
}

func NewToolRegistry(logger logx.Logger) *ToolRegistry {
	return &ToolRegistry{
		factories: make(map[string]ToolFactory),
		metadata:  make(map[string]ports.ToolMetadata),
		logger:    logger.With("component", "tool-registry"),
	}
}

// Register adds a factory. Names must be unique.
func (r *ToolRegistry) Register(name string, factory ToolFactory, meta ports.ToolMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for tool %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}

	if meta.Name == "" {
		meta.Name = name
	}
	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("tool registered", "name", name, "output", meta.Output, "optional", meta.Optional)
	return nil
}

// Build constructs the named tool. A nil cfg.ExecPath falls back to the
// tool name.
func (r *ToolRegistry) Build(name string, cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "tool %s not registered", name)
	}

	if cfg.ExecPath == "" {
		cfg.ExecPath = name
	}

	tool, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool %s: %w", name, err)
	}
	return tool, nil
}

// List returns registered names, sorted.
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata returns the metadata registered for name.
func (r *ToolRegistry) Metadata(name string) (ports.ToolMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.metadata[name]
	return meta, ok
}

func (r *ToolRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Clear removes every registration (tests only).
func (r *ToolRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]ToolFactory)
	r.metadata = make(map[string]ports.ToolMetadata)
}
