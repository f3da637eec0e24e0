// internal/core/usecases/prioritize_service.go
package usecases

import (
	"context"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
)

// PrioritizeService narrows unique-param-urls to the lines that mention a
// high-risk parameter.
type PrioritizeService struct {
	store  ports.ArtifactStore
	logger logx.Logger
}

func NewPrioritizeService(store ports.ArtifactStore, logger logx.Logger) *PrioritizeService {
	return &PrioritizeService{
		store:  store,
		logger: logger.With("component", "prioritizer"),
	}
}

// Run writes prioritized-urls and returns how many lines it holds.
func (s *PrioritizeService) Run(ctx context.Context, params domain.ParameterSet) (int, error) {
	lines, err := s.store.ReadLines(domain.ArtifactUniqueParamURLs)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", domain.ArtifactUniqueParamURLs)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	kept := Prioritize(lines, params)
	if err := s.store.WriteLines(domain.ArtifactPrioritizedURLs, kept); err != nil {
		return 0, errors.Wrapf(err, "write %s", domain.ArtifactPrioritizedURLs)
	}

	s.logger.Info("urls prioritized",
		"input", len(lines),
		"kept", len(kept),
		"params", params.String(),
	)
	return len(kept), nil
}

// Prioritize keeps a line when "name=" occurs in it for any name in params.
// The match is a substring test: "id" also keeps "valid_id=5".
func Prioritize(lines []string, params domain.ParameterSet) []string {
	names := params.Names()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		for _, name := range names {
			if domain.MentionsParam(line, name) {
				out = append(out, line)
				break
			}
		}
	}
	return out
}
