// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// PTermPresenter renders the session with pterm spinners, boxes and tables.
type PTermPresenter struct {
	mu sync.Mutex

	start   time.Time
	spinner *pterm.SpinnerPrinter
	stage   StageInfo
}

func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

func (p *PTermPresenter) Start(info SessionInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()

	pterm.Println(StylePrimary.Sprint(Banner))

	panel := pterm.DefaultBox.
		WithTitle("Session").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))

	body := fmt.Sprintf("%s Target:  %s\n", IconTarget, pterm.Cyan(info.Target))
	body += fmt.Sprintf("%s Workdir: %s\n", IconFolder, info.WorkDir)
	body += fmt.Sprintf("%s State:   %s", IconStage, stateLabel(info.State))
	if info.Cached != "" && info.Cached != info.Target {
		body += fmt.Sprintf("\n   Previous: %s", StyleSecondary.Sprint(info.Cached))
	}
	panel.Println(body)

	pterm.Println()
	pterm.Println(pterm.LightGreen(SeparatorHeavy))
	pterm.Println()
}

func (p *PTermPresenter) StartStage(stage StageInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	p.stage = stage

	text := fmt.Sprintf("[%d/%d] %s", stage.Number, stage.TotalStages, pterm.Cyan(stage.Name))
	if stage.Tool != "" {
		text += StyleSecondary.Sprintf(" (%s)", stage.Tool)
	}

	spinner, err := pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷").
		WithRemoveWhenDone(false).
		Start(text)
	if err != nil {
		pterm.Println(text)
		return
	}
	p.spinner = spinner
}

func (p *PTermPresenter) FinishStage(result StageResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("[%d/%d] %s  %s lines  %s",
		result.Number,
		p.stage.TotalStages,
		result.Name,
		strconv.Itoa(result.Lines),
		StyleSecondary.Sprint(formatDuration(result.Duration)),
	)
	if result.Detail != "" {
		line += "  " + result.Detail
	}

	if p.spinner == nil {
		pterm.Println(result.Status.Style().Sprint(result.Status.Symbol()) + " " + line)
		return
	}

	switch result.Status {
	case StatusSuccess:
		p.spinner.Success(line)
	case StatusWarning, StatusSkipped:
		p.spinner.Warning(line)
	default:
		p.spinner.Fail(line)
	}
	p.spinner = nil
}

func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	pterm.Info.Println(msg)
}

func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	pterm.Warning.Println(msg)
}

func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	pterm.Error.Println(msg)
}

func (p *PTermPresenter) Finish(summary RunSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()

	pterm.Println()
	pterm.DefaultSection.Println(IconStats + " Summary")

	rows := pterm.TableData{{"Artifact", "File", "Lines"}}
	for _, a := range summary.Artifacts {
		rows = append(rows, []string{a.Name, a.File, strconv.Itoa(a.Lines)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(rows).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}

	body := fmt.Sprintf("%s Target:   %s (%s)\n", IconTarget, pterm.Cyan(summary.Target), stateLabel(summary.State))
	if summary.Mode != "" {
		body += fmt.Sprintf("%s Mode:     %s\n", IconSyringe, summary.Mode)
	}
	if len(summary.Params) > 0 {
		body += fmt.Sprintf("   Params:   [%s]\n", strings.Join(summary.Params, ", "))
	}
	body += fmt.Sprintf("   Dispatch: %s", dispatchLine(summary))
	body += fmt.Sprintf("\n%s Elapsed:  %s", IconTime, formatDuration(summary.Duration))

	pterm.DefaultBox.
		WithTitle("Scan").
		WithTitleTopCenter().
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Println(body)

	if len(summary.Batches) > 0 {
		batchRows := pterm.TableData{{"Batch", "URLs", "PID", "Log"}}
		for _, b := range summary.Batches {
			batchRows = append(batchRows, []string{b.Name, strconv.Itoa(b.URLs), strconv.Itoa(b.PID), b.Log})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(batchRows).Render(); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	return nil
}

// stopSpinner must be called with mu held.
func (p *PTermPresenter) stopSpinner() {
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
}

func dispatchLine(s RunSummary) string {
	switch s.Dispatch {
	case "sequential":
		return fmt.Sprintf("sequential, %d scanned, %d failed", s.Scanned, s.Failed)
	case "batched":
		return fmt.Sprintf("batched, %d processes launched", len(s.Batches))
	case "":
		return "not run"
	default:
		return "nothing to test"
	}
}
