package httpx

import (
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
)

func init() {
	err := registry.Global().Register(toolName, factory, ports.ToolMetadata{
		Description: "HTTP liveness probing of discovered subdomains",
		InstallHint: installHint,
		Output:      domain.ArtifactLiveSubdomains,
	})
	if err != nil {
		logx.New().Warn("failed to register httpx", "error", err.Error())
	}
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error) {
	if err := registry.ValidateNonNegativeDuration("httpx timeout", cfg.Timeout); err != nil {
		return nil, err
	}
	return New(logger, cfg), nil
}
