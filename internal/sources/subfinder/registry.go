package subfinder

import (
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
)

func init() {
	if err := registry.Global().Register(
		toolName,
		factory,
		ports.ToolMetadata{
			Description: "Passive subdomain enumeration",
			InstallHint: installHint,
			Output:      domain.ArtifactSubdomains,
		},
	); err != nil {
		logx.New().Warn("failed to register subfinder", "error", err.Error())
	}
}

func factory(cfg ports.ToolConfig, logger logx.Logger) (ports.Enumerator, error) {
	return New(logger, cfg), nil
}
