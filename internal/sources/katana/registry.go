package katana

import (
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
)

func init() {
	err := registry.Global().Register(toolName, factory, ports.ToolMetadata{
		Description: "Crawls live hosts for endpoints",
		InstallHint: installHint,
		Output:      domain.ArtifactCrawledEndpoints,
	})
	if err != nil {
		logx.New().Warn("failed to register katana", "error", err.Error())
	}
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error) {
	if err := registry.ValidateNonNegativeDuration("katana timeout", cfg.Timeout); err != nil {
		return nil, err
	}
	return New(logger, cfg), nil
}
