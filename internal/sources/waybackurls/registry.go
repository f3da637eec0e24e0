package waybackurls

import (
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
)

func init() {
	err := registry.Global().Register(toolName, factory, ports.ToolMetadata{
		Description: "Archived endpoints from the Wayback Machine and friends",
		InstallHint: installHint,
		Output:      domain.ArtifactArchivedEndpoints,
		Optional:    true,
	})
	if err != nil {
		logx.New().Warn("failed to register waybackurls", "error", err.Error())
	}
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error) {
	if err := registry.ValidateNonNegativeDuration("waybackurls timeout", cfg.Timeout); err != nil {
		return nil, err
	}
	return New(logger, cfg), nil
}
