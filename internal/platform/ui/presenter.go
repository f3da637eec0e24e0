// internal/platform/ui/presenter.go
package ui

import (
	"time"
)

// Presenter renders session progress for the operator. Implementations must
// be safe to call from one goroutine at a time; the session never calls
// them concurrently.
type Presenter interface {
	// Start shows the session header.
	Start(info SessionInfo)

	// StartStage announces one pipeline step.
	StartStage(stage StageInfo)

	// FinishStage closes the step opened by StartStage.
	FinishStage(result StageResult)

	Info(msg string)
	Warning(msg string)
	Error(msg string)

	// Finish prints the end-of-run summary.
	Finish(summary RunSummary)

	// Close releases spinners and other live output.
	Close() error
}

// SessionInfo is shown once before any work starts.
type SessionInfo struct {
	Target  string
	WorkDir string
	State   string // "fresh" or "cached"
	Cached  string // domain found in the marker, if any
}

// StageInfo describes a pipeline step.
type StageInfo struct {
	Number      int
	TotalStages int
	Name        string
	Tool        string
}

// StageResult is the outcome of a pipeline step.
type StageResult struct {
	Number   int
	Name     string
	Status   Status
	Lines    int
	Duration time.Duration
	Detail   string
}

// ArtifactCount is one row of the summary table.
type ArtifactCount struct {
	Name  string
	File  string
	Lines int
}

// BatchInfo is one launched batch scan.
type BatchInfo struct {
	Name string
	URLs int
	PID  int
	Log  string
}

// RunSummary closes a session.
type RunSummary struct {
	Target    string
	State     string
	Mode      string
	Params    []string
	Artifacts []ArtifactCount
	Dispatch  string // "sequential", "batched" or "empty"
	Scanned   int
	Failed    int
	Batches   []BatchInfo
	Duration  time.Duration
}
