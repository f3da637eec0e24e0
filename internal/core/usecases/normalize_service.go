// internal/core/usecases/normalize_service.go
package usecases

import (
	"context"
	"slices"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
)

// NormalizeService turns the raw endpoint artifacts into the candidate list:
// merge, keep parameterized lines, keep one line per first parameter name.
type NormalizeService struct {
	store  ports.ArtifactStore
	logger logx.Logger
}

// NormalizeStats counts the lines written by each step.
type NormalizeStats struct {
	Merged        int
	Parameterized int
	Unique        int
}

// normalizeInputs are merged in this order; order does not matter because
// the merge sorts.
var normalizeInputs = []domain.ArtifactName{
	domain.ArtifactCrawledEndpoints,
	domain.ArtifactArchivedEndpoints,
}

func NewNormalizeService(store ports.ArtifactStore, logger logx.Logger) *NormalizeService {
	return &NormalizeService{
		store:  store,
		logger: logger.With("component", "normalizer"),
	}
}

// Run reads the endpoint artifacts and writes merged-endpoints,
// parameterized-urls and unique-param-urls. Missing inputs read as empty.
func (s *NormalizeService) Run(ctx context.Context) (NormalizeStats, error) {
	var stats NormalizeStats

	inputs := make([][]string, 0, len(normalizeInputs))
	for _, name := range normalizeInputs {
		lines, err := s.store.ReadLines(name)
		if err != nil {
			return stats, errors.Wrapf(err, "read %s", name)
		}
		inputs = append(inputs, lines)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	merged := MergeDedup(inputs...)
	if err := s.store.WriteLines(domain.ArtifactMergedEndpoints, merged); err != nil {
		return stats, errors.Wrapf(err, "write %s", domain.ArtifactMergedEndpoints)
	}
	stats.Merged = len(merged)

	parameterized := FilterParameterized(merged)
	if err := s.store.WriteLines(domain.ArtifactParameterizedURLs, parameterized); err != nil {
		return stats, errors.Wrapf(err, "write %s", domain.ArtifactParameterizedURLs)
	}
	stats.Parameterized = len(parameterized)

	unique := DedupeByParam(parameterized)
	if err := s.store.WriteLines(domain.ArtifactUniqueParamURLs, unique); err != nil {
		return stats, errors.Wrapf(err, "write %s", domain.ArtifactUniqueParamURLs)
	}
	stats.Unique = len(unique)

	s.logger.Info("endpoints normalized",
		"merged", stats.Merged,
		"parameterized", stats.Parameterized,
		"unique", stats.Unique,
	)
	return stats, nil
}

// MergeDedup concatenates the inputs, sorts bytewise and drops exact
// duplicates. The sort order decides which line wins in DedupeByParam.
func MergeDedup(inputs ...[]string) []string {
	total := 0
	for _, in := range inputs {
		total += len(in)
	}
	merged := make([]string, 0, total)
	for _, in := range inputs {
		merged = append(merged, in...)
	}
	slices.Sort(merged)
	return slices.Compact(merged)
}

// FilterParameterized keeps lines containing '?'. Nothing is parsed.
func FilterParameterized(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if domain.HasQuery(line) {
			out = append(out, line)
		}
	}
	return out
}

// DedupeByParam keeps the first line seen for each first-parameter key.
// Lines without a key are dropped. Later parameters never produce entries.
func DedupeByParam(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		key, ok := domain.FirstParamKey(line)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return out
}
