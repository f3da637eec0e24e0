// internal/adapters/console/operator.go
package console

import (
	"context"
	"fmt"
	"strings"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/ui"
)

// ArchivePolicy decides whether the archive stage asks, always runs or never runs.
type ArchivePolicy string

const (
	ArchiveAsk ArchivePolicy = "ask"
	ArchiveYes ArchivePolicy = "yes"
	ArchiveNo  ArchivePolicy = "no"
)

// ParseArchivePolicy accepts ask|yes|no. Empty means ask.
func ParseArchivePolicy(s string) (ArchivePolicy, error) {
	switch p := ArchivePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ArchiveAsk, nil
	case ArchiveAsk, ArchiveYes, ArchiveNo:
		return p, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidInput, "archive policy %q (want ask|yes|no)", s)
	}
}

// Options are answers resolved ahead of time from flags or config. Anything
// left unset is asked through the prompter.
type Options struct {
	Archive ArchivePolicy

	// Mode is a raw mode string ("1", "general", ...). Empty prompts.
	Mode string

	// Params replaces the default parameter set when non-nil.
	Params []string

	// AddParams and RemoveParams are applied after Params (or the defaults).
	AddParams    []string
	RemoveParams []string
}

func (o Options) paramsPreset() bool {
	return o.Params != nil || len(o.AddParams) > 0 || len(o.RemoveParams) > 0
}

var modeOptions = []string{
	"Prioritized (high-risk parameters only)",
	"General (every unique-parameter URL)",
}

// Operator answers session questions from Options first and the prompter second.
type Operator struct {
	prompter  ui.Prompter
	presenter ui.Presenter
	opts      Options
	logger    logx.Logger
}

var _ ports.Operator = (*Operator)(nil)

func NewOperator(prompter ui.Prompter, presenter ui.Presenter, opts Options, logger logx.Logger) *Operator {
	if presenter == nil {
		presenter = ui.NewNoopPresenter()
	}
	if opts.Archive == "" {
		opts.Archive = ArchiveAsk
	}
	return &Operator{
		prompter:  prompter,
		presenter: presenter,
		opts:      opts,
		logger:    logger.With("component", "operator"),
	}
}

func (o *Operator) ConfirmArchiveFetch(ctx context.Context) (bool, error) {
	switch o.opts.Archive {
	case ArchiveYes:
		return true, nil
	case ArchiveNo:
		return false, nil
	}
	ok, err := o.prompter.Confirm(ctx, "Fetch archived URLs with waybackurls?", false)
	if err != nil {
		return false, errors.Wrap(err, "archive prompt")
	}
	o.logger.Debug("archive decision", "fetch", ok)
	return ok, nil
}

func (o *Operator) SelectMode(ctx context.Context) (domain.ScanMode, error) {
	if o.opts.Mode != "" {
		return domain.ParseScanMode(o.opts.Mode)
	}

	idx, err := o.prompter.Select(ctx, "Choose testing mode", modeOptions)
	if err != nil {
		if errors.IsInvalidSelection(err) {
			return "", errors.Wrap(domain.ErrInvalidScanMode, err.Error())
		}
		return "", errors.Wrap(err, "mode prompt")
	}
	if idx == 0 {
		return domain.ScanModePrioritized, nil
	}
	return domain.ScanModeGeneral, nil
}

// ResolveParams returns the preset parameter set when any parameter option
// was given. Otherwise it offers the add/remove/done loop.
func (o *Operator) ResolveParams(ctx context.Context, defaults domain.ParameterSet) (domain.ParameterSet, error) {
	if o.opts.paramsPreset() {
		return o.presetParams(defaults)
	}

	o.presenter.Info("High-risk parameters: " + defaults.String())
	customize, err := o.prompter.Confirm(ctx, "Customize the parameter list?", false)
	if err != nil {
		return defaults, errors.Wrap(err, "parameter prompt")
	}
	if !customize {
		return defaults, nil
	}
	return o.editLoop(ctx, defaults)
}

func (o *Operator) presetParams(defaults domain.ParameterSet) (domain.ParameterSet, error) {
	base := defaults
	if o.opts.Params != nil {
		base = domain.NewParameterSet(o.opts.Params...)
	}

	edits := make([]domain.ParamEdit, 0, len(o.opts.AddParams)+len(o.opts.RemoveParams))
	for _, name := range o.opts.AddParams {
		edits = append(edits, domain.ParamEdit{Action: domain.ParamAdd, Name: name})
	}
	for _, name := range o.opts.RemoveParams {
		edits = append(edits, domain.ParamEdit{Action: domain.ParamRemove, Name: name})
	}

	set, err := base.Apply(edits)
	if err != nil {
		return defaults, err
	}
	o.logger.Debug("parameters from options", "params", set.String())
	return set, nil
}

// editLoop runs add/remove/done until done. Unknown actions and blank names
// are reported and the question is asked again.
func (o *Operator) editLoop(ctx context.Context, start domain.ParameterSet) (domain.ParameterSet, error) {
	current := start
	for {
		answer, err := o.prompter.Input(ctx, "Action (add/remove/done)")
		if err != nil {
			return start, errors.Wrap(err, "parameter action")
		}
		action, err := domain.ParseParamAction(answer)
		if err != nil {
			o.presenter.Warning(fmt.Sprintf("Invalid action %q, use add, remove or done", answer))
			continue
		}
		if action == domain.ParamDone {
			o.logger.Debug("parameters customized", "params", current.String())
			return current, nil
		}

		name, err := o.prompter.Input(ctx, fmt.Sprintf("Parameter to %s", action))
		if err != nil {
			return start, errors.Wrap(err, "parameter name")
		}

		next, err := current.Apply([]domain.ParamEdit{{Action: action, Name: name}})
		if err != nil {
			o.presenter.Warning(err.Error())
			continue
		}
		current = next
		o.presenter.Info("Current parameters: " + current.String())
	}
}
