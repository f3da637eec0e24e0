// internal/core/usecases/session.go
package usecases

import (
	"context"
	"time"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/ui"
)

// SessionController decides between a fresh pipeline run and the cached
// artifacts, then drives mode selection, prioritization and dispatch.
type SessionController struct {
	store       ports.ArtifactStore
	pipeline    *PipelineOrchestrator
	prioritizer *PrioritizeService
	dispatcher  *Dispatcher
	operator    ports.Operator
	presenter   ui.Presenter
	defaults    domain.ParameterSet
	workDir     string
	logger      logx.Logger
}

// SessionOptions wires a SessionController.
type SessionOptions struct {
	Store      ports.ArtifactStore
	Pipeline   *PipelineOrchestrator
	Dispatcher *Dispatcher
	Operator   ports.Operator
	Presenter  ui.Presenter

	// DefaultParams seeds parameter resolution. Zero value means the
	// built-in high-risk list.
	DefaultParams domain.ParameterSet

	// WorkDir is shown in the session header only.
	WorkDir string

	Logger logx.Logger
}

// SessionResult summarizes a finished (or aborted) session.
type SessionResult struct {
	Target   domain.Target
	State    domain.SessionState
	Cached   string
	Mode     domain.ScanMode
	Params   domain.ParameterSet
	Pipeline *PipelineReport
	Dispatch *DispatchReport
	Duration time.Duration
}

func NewSessionController(opts SessionOptions) *SessionController {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.DefaultParams.Len() == 0 {
		opts.DefaultParams = domain.DefaultParameterSet()
	}
	return &SessionController{
		store:       opts.Store,
		pipeline:    opts.Pipeline,
		prioritizer: NewPrioritizeService(opts.Store, opts.Logger),
		dispatcher:  opts.Dispatcher,
		operator:    opts.Operator,
		presenter:   opts.Presenter,
		defaults:    opts.DefaultParams,
		workDir:     opts.WorkDir,
		logger:      opts.Logger.With("component", "session"),
	}
}

// Resolve compares target with the recorded last domain.
func (s *SessionController) Resolve(target domain.Target) (domain.SessionState, string, error) {
	cached, ok, err := s.store.LoadLastDomain()
	if err != nil {
		return domain.SessionFresh, "", errors.Wrap(err, "load last domain")
	}
	return domain.ResolveSessionState(cached, ok, target), cached, nil
}

// Run executes one session for target. The returned result is non-nil even
// on error and reflects how far the session got.
func (s *SessionController) Run(ctx context.Context, target domain.Target) (*SessionResult, error) {
	start := time.Now()
	result := &SessionResult{Target: target}
	defer func() { result.Duration = time.Since(start) }()

	if err := target.Validate(); err != nil {
		return result, err
	}

	state, cached, err := s.Resolve(target)
	if err != nil {
		return result, err
	}
	result.State, result.Cached = state, cached

	s.logger.Info("session started", "target", target.Root, "state", state, "cached", cached)
	s.presenter.Start(ui.SessionInfo{
		Target:  target.Root,
		WorkDir: s.workDir,
		State:   state.String(),
		Cached:  cached,
	})

	switch state {
	case domain.SessionFresh:
		report, err := s.runFresh(ctx, target)
		result.Pipeline = report
		if err != nil {
			return result, err
		}
	case domain.SessionCached:
		s.presenter.Info("Reusing cached artifacts for " + target.Root)
	}

	mode, err := s.operator.SelectMode(ctx)
	if err != nil {
		s.presenter.Error("Invalid testing mode")
		return result, err
	}
	result.Mode = mode
	s.logger.Info("mode selected", "mode", mode)

	if mode == domain.ScanModePrioritized {
		params, err := s.operator.ResolveParams(ctx, s.defaults)
		if err != nil {
			return result, err
		}
		result.Params = params
		if _, err := s.prioritizer.Run(ctx, params); err != nil {
			return result, err
		}
	}

	report, err := s.dispatcher.Dispatch(ctx, mode.Source())
	result.Dispatch = report
	if err != nil {
		return result, errors.Wrap(err, "dispatch scans")
	}
	return result, nil
}

// runFresh checks the tools, asks about the archive stage, purges every
// artifact and runs the pipeline. The marker is only written on success, so
// an aborted run is never mistaken for a cached one.
func (s *SessionController) runFresh(ctx context.Context, target domain.Target) (*PipelineReport, error) {
	warnings, err := s.pipeline.Preflight()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.presenter.Warning(w)
	}

	includeArchive := false
	if s.pipeline.HasOptional() {
		includeArchive, err = s.operator.ConfirmArchiveFetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.ResetAll(); err != nil {
		return nil, errors.Wrap(err, "reset artifacts")
	}

	report, err := s.pipeline.Run(ctx, target, includeArchive)
	if err != nil {
		return report, err
	}

	if err := s.store.SaveLastDomain(target.Root); err != nil {
		return report, errors.Wrap(err, "save last domain")
	}
	return report, nil
}

// Summary builds the presenter summary, counting lines of every known
// artifact.
func (s *SessionController) Summary(result *SessionResult) ui.RunSummary {
	summary := ui.RunSummary{
		Target:   result.Target.Root,
		State:    result.State.String(),
		Mode:     result.Mode.String(),
		Duration: result.Duration,
	}
	if result.Mode == domain.ScanModePrioritized {
		summary.Params = result.Params.Names()
	}

	for _, name := range domain.KnownArtifacts() {
		lines, err := s.store.ReadLines(name)
		if err != nil {
			s.logger.Debug("artifact unreadable", "artifact", name, "error", err.Error())
			continue
		}
		file, _ := s.store.Locate(name)
		summary.Artifacts = append(summary.Artifacts, ui.ArtifactCount{
			Name:  name.String(),
			File:  file,
			Lines: len(lines),
		})
	}

	if d := result.Dispatch; d != nil {
		summary.Dispatch = string(d.Mode)
		summary.Scanned = d.Scanned
		summary.Failed = d.Failed()
		for _, b := range d.Batches {
			summary.Batches = append(summary.Batches, ui.BatchInfo{
				Name: b.Batch.Name.String(),
				URLs: len(b.Batch.URLs),
				PID:  b.PID,
				Log:  b.LogPath,
			})
		}
	}
	return summary
}
