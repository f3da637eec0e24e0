// internal/core/usecases/stage.go
package usecases

import (
	"time"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/platform/ui"
)

// Stage representa la ejecución de una herramienta externa en el pipeline.
type Stage struct {
	// Name is shown to the operator ("subdomains", "crawl", ...).
	Name string

	// Tool is the registry name of the enumerator to run.
	Tool string

	// Input is the artifact fed to the tool. Empty for the first stage.
	Input domain.ArtifactName

	// Output receives the tool's lines.
	Output domain.ArtifactName

	// Optional stages run only when enabled and may fail without aborting.
	Optional bool

	// Append adds to Output instead of replacing it.
	Append bool
}

// DefaultStages is the fixed enumeration order: subdomains, liveness,
// crawl, then the optional archive lookup.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "subdomains", Tool: "subfinder", Output: domain.ArtifactSubdomains},
		{Name: "liveness", Tool: "httpx", Input: domain.ArtifactSubdomains, Output: domain.ArtifactLiveSubdomains},
		{Name: "crawl", Tool: "katana", Input: domain.ArtifactLiveSubdomains, Output: domain.ArtifactCrawledEndpoints},
		{Name: "archive", Tool: "waybackurls", Input: domain.ArtifactLiveSubdomains, Output: domain.ArtifactArchivedEndpoints, Optional: true, Append: true},
	}
}

// StageOutcome registra el resultado de una etapa.
type StageOutcome struct {
	Stage    Stage
	Status   ui.Status
	Lines    int
	Duration time.Duration
	Err      error
}

// PipelineReport contiene el resultado de una enumeración completa.
type PipelineReport struct {
	Stages    []StageOutcome
	Normalize NormalizeStats
	Duration  time.Duration
}

// Outcome returns the outcome of the named stage.
func (r *PipelineReport) Outcome(name string) (StageOutcome, bool) {
	for _, o := range r.Stages {
		if o.Stage.Name == name {
			return o, true
		}
	}
	return StageOutcome{}, false
}
