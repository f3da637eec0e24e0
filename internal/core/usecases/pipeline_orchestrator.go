// internal/core/usecases/pipeline_orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/ui"
)

// PipelineOrchestrator runs the enumeration stages strictly in order, then
// the normalizer. Required stage failures abort; optional ones are warned
// about and leave their artifact empty.
type PipelineOrchestrator struct {
	stages     []Stage
	tools      map[string]ports.Enumerator
	store      ports.ArtifactStore
	normalizer *NormalizeService
	presenter  ui.Presenter
	logger     logx.Logger
}

// PipelineOrchestratorOptions configures the orchestrator.
type PipelineOrchestratorOptions struct {
	// Stages defaults to DefaultStages().
	Stages []Stage

	// Tools maps Stage.Tool to an enumerator. Optional stages may be missing.
	Tools map[string]ports.Enumerator

	Store     ports.ArtifactStore
	Presenter ui.Presenter
	Logger    logx.Logger
}

func NewPipelineOrchestrator(opts PipelineOrchestratorOptions) *PipelineOrchestrator {
	if opts.Stages == nil {
		opts.Stages = DefaultStages()
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	tools := make(map[string]ports.Enumerator, len(opts.Tools))
	for name, tool := range opts.Tools {
		tools[name] = tool
	}
	return &PipelineOrchestrator{
		stages:     opts.Stages,
		tools:      tools,
		store:      opts.Store,
		normalizer: NewNormalizeService(opts.Store, opts.Logger),
		presenter:  opts.Presenter,
		logger:     opts.Logger.With("component", "pipeline_orchestrator"),
	}
}

// Stages returns the configured stages.
func (p *PipelineOrchestrator) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// HasOptional reports whether at least one optional stage has a tool.
func (p *PipelineOrchestrator) HasOptional() bool {
	for _, s := range p.stages {
		if s.Optional && p.tools[s.Tool] != nil {
			return true
		}
	}
	return false
}

// Preflight checks every tool before anything is deleted. A required tool
// that is missing or fails Initialize is an error. An optional one is
// dropped from the run and reported in the returned warnings.
func (p *PipelineOrchestrator) Preflight() ([]string, error) {
	var warnings []string
	for _, s := range p.stages {
		tool, ok := p.tools[s.Tool]
		var err error
		if !ok || tool == nil {
			err = errors.Wrapf(errors.ErrToolNotFound, "%s: no adapter registered", s.Tool)
		} else if initializer, ok := tool.(ports.Initializer); ok {
			err = initializer.Initialize()
		}
		if err == nil {
			continue
		}
		if !s.Optional {
			return warnings, errors.Wrapf(err, "stage %s", s.Name)
		}
		p.logger.Warn("optional stage disabled", "stage", s.Name, "tool", s.Tool, "error", err.Error())
		warnings = append(warnings, fmt.Sprintf("%s disabled: %v", s.Name, err))
		delete(p.tools, s.Tool)
	}
	return warnings, nil
}

// Run executes the stages for target. includeOptional gates the optional
// stages. The store is expected to be reset already.
func (p *PipelineOrchestrator) Run(ctx context.Context, target domain.Target, includeOptional bool) (*PipelineReport, error) {
	start := time.Now()
	report := &PipelineReport{Stages: make([]StageOutcome, 0, len(p.stages))}
	total := len(p.stages) + 1

	p.logger.Info("starting pipeline", "target", target.Root, "stages", len(p.stages), "optional", includeOptional)

	for i, stage := range p.stages {
		p.presenter.StartStage(ui.StageInfo{
			Number:      i + 1,
			TotalStages: total,
			Name:        stage.Name,
			Tool:        stage.Tool,
		})

		outcome := p.runStage(ctx, stage, target, includeOptional)
		report.Stages = append(report.Stages, outcome)
		p.presenter.FinishStage(stageResult(i+1, outcome))

		if outcome.Status == ui.StatusError {
			report.Duration = time.Since(start)
			return report, outcome.Err
		}
	}

	normStart := time.Now()
	p.presenter.StartStage(ui.StageInfo{Number: total, TotalStages: total, Name: "normalize"})
	stats, err := p.normalizer.Run(ctx)
	report.Normalize = stats

	result := ui.StageResult{
		Number:   total,
		Name:     "normalize",
		Status:   ui.StatusSuccess,
		Lines:    stats.Unique,
		Duration: time.Since(normStart),
		Detail:   fmt.Sprintf("merged=%d parameterized=%d unique=%d", stats.Merged, stats.Parameterized, stats.Unique),
	}
	if err != nil {
		result.Status = ui.StatusError
		result.Detail = err.Error()
	}
	p.presenter.FinishStage(result)

	report.Duration = time.Since(start)
	if err != nil {
		return report, errors.Wrap(err, "normalize endpoints")
	}

	p.logger.Info("pipeline completed", "target", target.Root, "duration_ms", report.Duration.Milliseconds())
	return report, nil
}

func (p *PipelineOrchestrator) runStage(ctx context.Context, stage Stage, target domain.Target, includeOptional bool) StageOutcome {
	start := time.Now()
	outcome := StageOutcome{Stage: stage}

	tool := p.tools[stage.Tool]
	if stage.Optional && (!includeOptional || tool == nil) {
		outcome.Status = ui.StatusSkipped
		p.logger.Debug("stage skipped", "stage", stage.Name)
		return outcome
	}

	fail := func(err error) StageOutcome {
		outcome.Duration = time.Since(start)
		outcome.Err = err
		if stage.Optional && ctx.Err() == nil {
			outcome.Status = ui.StatusWarning
			p.logger.Warn("optional stage failed", "stage", stage.Name, "tool", stage.Tool, "error", err.Error())
			return outcome
		}
		outcome.Status = ui.StatusError
		p.logger.Warn("stage failed", "stage", stage.Name, "tool", stage.Tool, "error", err.Error())
		return outcome
	}

	if tool == nil {
		return fail(errors.Wrapf(errors.ErrToolNotFound, "stage %s: %s", stage.Name, stage.Tool))
	}

	var input []string
	if stage.Input != "" {
		lines, err := p.store.ReadLines(stage.Input)
		if err != nil {
			return fail(errors.Wrapf(err, "read %s", stage.Input))
		}
		input = lines
	}

	lines, err := tool.Run(ctx, target, input)
	if err != nil {
		return fail(errors.Wrapf(err, "stage %s", stage.Name))
	}

	write := p.store.WriteLines
	if stage.Append {
		write = p.store.AppendLines
	}
	if err := write(stage.Output, lines); err != nil {
		return fail(errors.Wrapf(err, "write %s", stage.Output))
	}

	outcome.Status = ui.StatusSuccess
	outcome.Lines = len(lines)
	outcome.Duration = time.Since(start)
	p.logger.Info("stage completed",
		"stage", stage.Name,
		"tool", stage.Tool,
		"lines", outcome.Lines,
		"duration_ms", outcome.Duration.Milliseconds(),
	)
	return outcome
}

func stageResult(number int, o StageOutcome) ui.StageResult {
	r := ui.StageResult{
		Number:   number,
		Name:     o.Stage.Name,
		Status:   o.Status,
		Lines:    o.Lines,
		Duration: o.Duration,
	}
	switch {
	case o.Err != nil:
		r.Detail = o.Err.Error()
	case o.Status == ui.StatusSkipped:
		r.Detail = "not requested"
	}
	return r
}
