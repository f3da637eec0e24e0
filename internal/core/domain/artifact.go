// internal/core/domain/artifact.go
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ArtifactName identifica la salida (una línea por registro) de una etapa del pipeline.
type ArtifactName string

const (
	ArtifactSubdomains        ArtifactName = "subdomains"
	ArtifactLiveSubdomains    ArtifactName = "live-subdomains"
	ArtifactCrawledEndpoints  ArtifactName = "crawled-endpoints"
	ArtifactArchivedEndpoints ArtifactName = "archived-endpoints"
	ArtifactMergedEndpoints   ArtifactName = "merged-endpoints"
	ArtifactParameterizedURLs ArtifactName = "parameterized-urls"
	ArtifactUniqueParamURLs   ArtifactName = "unique-param-urls"
	ArtifactPrioritizedURLs   ArtifactName = "prioritized-urls"
)

const batchPrefix = "batch_"

// knownArtifacts is the stage-ordered set owned by the store. Batches are
// tracked separately because their count depends on the result size.
var knownArtifacts = []ArtifactName{
	ArtifactSubdomains,
	ArtifactLiveSubdomains,
	ArtifactCrawledEndpoints,
	ArtifactArchivedEndpoints,
	ArtifactMergedEndpoints,
	ArtifactParameterizedURLs,
	ArtifactUniqueParamURLs,
	ArtifactPrioritizedURLs,
}

// artifactFiles keeps the file names the tool has always used on disk.
var artifactFiles = map[ArtifactName]string{
	ArtifactSubdomains:        "subdomains.txt",
	ArtifactLiveSubdomains:    "live_subdomains.txt",
	ArtifactCrawledEndpoints:  "endpoints_katana.txt",
	ArtifactArchivedEndpoints: "endpoints_waybackurls.txt",
	ArtifactMergedEndpoints:   "final_endpoints.txt",
	ArtifactParameterizedURLs: "param_urls.txt",
	ArtifactUniqueParamURLs:   "unique_param_urls.txt",
	ArtifactPrioritizedURLs:   "prioritized_urls.txt",
}

// LastDomainFile holds the session marker.
const LastDomainFile = "last_domain.txt"

// KnownArtifacts retorna el conjunto fijo de artefactos en orden de pipeline.
func KnownArtifacts() []ArtifactName {
	out := make([]ArtifactName, len(knownArtifacts))
	copy(out, knownArtifacts)
	return out
}

// BatchArtifact retorna el nombre del artefacto del lote index.
func BatchArtifact(index int) ArtifactName {
	return ArtifactName(batchPrefix + strconv.Itoa(index))
}

// BatchIndex returns the index encoded in a batch artifact name.
func (n ArtifactName) BatchIndex() (int, bool) {
	rest, ok := strings.CutPrefix(string(n), batchPrefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// IsBatch reports whether n names a batch artifact.
func (n ArtifactName) IsBatch() bool {
	_, ok := n.BatchIndex()
	return ok
}

// IsKnown reports whether n belongs to the fixed set or is a batch.
func (n ArtifactName) IsKnown() bool {
	_, ok := artifactFiles[n]
	return ok || n.IsBatch()
}

// FileName retorna el nombre de archivo en disco de n.
func (n ArtifactName) FileName() (string, error) {
	if f, ok := artifactFiles[n]; ok {
		return f, nil
	}
	if n.IsBatch() {
		return string(n) + ".txt", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownArtifact, n)
}

func (n ArtifactName) String() string {
	return string(n)
}
