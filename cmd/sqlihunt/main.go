// cmd/sqlihunt/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sqlihunt/internal/adapters/artifactstore"
	"sqlihunt/internal/adapters/console"
	"sqlihunt/internal/adapters/output"
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/core/usecases"
	"sqlihunt/internal/platform/config"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/registry"
	"sqlihunt/internal/platform/ui"
	"sqlihunt/internal/scanners/sqlmap"

	// Import tool adapters for auto-registration via init()
	_ "sqlihunt/internal/sources/httpx"
	_ "sqlihunt/internal/sources/katana"
	_ "sqlihunt/internal/sources/subfinder"
	_ "sqlihunt/internal/sources/waybackurls"
)

var (
	// Set with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Config (handles --help and --version)
	cfg, err := config.Load(version, commit, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: sqlihunt -h for help")
		return exitUsage
	}

	// 2. Shared logger
	logger := logx.NewWithLevel(logx.ParseLevel(cfg.Output.LogLevel))
	logger.Info("sqlihunt starting", "version", version, "commit", commit, "workdir", cfg.Core.WorkDir)

	// 3. Context and signals
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Operator console
	presenter := ui.NewPresenter(cfg.Output.Quiet, ui.LogFormat(cfg.Output.Format), os.Stdout)
	defer presenter.Close()
	interactive := ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
	prompter := ui.NewPrompter(os.Stdin, os.Stdout, interactive)

	// 5. Target
	raw := cfg.Core.Target
	if raw == "" {
		raw, err = prompter.Input(ctx, "Target domain")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: target domain is required")
			fmt.Fprintln(os.Stderr, "Usage: sqlihunt -t <domain>")
			return exitUsage
		}
	}
	target := domain.NewTarget(raw)
	if err := target.Validate(); err != nil {
		logger.Err(err, "phase", "validation")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	// 6. Storage and tools
	store, err := artifactstore.NewFileStore(cfg.Core.WorkDir, logger)
	if err != nil {
		logger.Err(err, "phase", "storage")
		presenter.Error(err.Error())
		return exitFailure
	}

	tools, err := buildTools(logger, cfg)
	if err != nil {
		logger.Err(err, "phase", "tool-build")
		presenter.Error(err.Error())
		return exitCode(err)
	}

	scanner := sqlmap.New(logger, sqlmap.Config{
		Tool:   cfg.Tool("sqlmap"),
		Args:   cfg.Scan.SqlmapArgs,
		LogDir: store.Dir(),
		Output: os.Stdout,
	})
	if err := scanner.Initialize(); err != nil {
		logger.Err(err, "phase", "preflight")
		presenter.Error(err.Error())
		return exitFailure
	}

	// 7. Use cases
	pipeline := usecases.NewPipelineOrchestrator(usecases.PipelineOrchestratorOptions{
		Tools:     tools,
		Store:     store,
		Presenter: presenter,
		Logger:    logger,
	})
	dispatcher := usecases.NewDispatcher(usecases.DispatcherOptions{
		Store:     store,
		Scanner:   scanner,
		BatchSize: cfg.Scan.BatchSize,
		Presenter: presenter,
		Logger:    logger,
	})
	operator := console.NewOperator(prompter, presenter, operatorOptions(cfg), logger)

	session := usecases.NewSessionController(usecases.SessionOptions{
		Store:      store,
		Pipeline:   pipeline,
		Dispatcher: dispatcher,
		Operator:   operator,
		Presenter:  presenter,
		WorkDir:    store.Dir(),
		Logger:     logger,
	})

	// 8. Run
	result, runErr := session.Run(ctx, target)
	if result != nil && result.State != "" {
		summary := session.Summary(result)
		presenter.Finish(summary)
		if cfg.Output.Report != "" {
			writeReport(cfg.Output.Report, summary, presenter, logger)
		}
	}
	if runErr != nil {
		logger.Err(runErr, "phase", "run", "target", target.Root)
		presenter.Error(runErr.Error())
		return exitCode(runErr)
	}

	// 9. Batch scans keep running unless asked to wait
	if report := result.Dispatch; report != nil && report.Mode == usecases.DispatchBatched {
		if !cfg.Scan.Wait {
			presenter.Info(fmt.Sprintf("%d batch scans running in the background, output in %s/batch_N.log", len(report.Batches), store.Dir()))
			return exitOK
		}
		presenter.Info(fmt.Sprintf("Waiting for %d batch scans", len(report.Batches)))
		failed := 0
		for _, outcome := range report.Wait() {
			if outcome.Err != nil {
				failed++
				presenter.Warning(fmt.Sprintf("%s: %v", outcome.Name, outcome.Err))
				continue
			}
			presenter.Info(outcome.Name + " finished")
		}
		logger.Info("batch scans finished", "batches", len(report.Batches), "failed", failed)
	}

	return exitOK
}

// writeReport saves the JSON session report. A failure is reported but
// does not change the exit code.
func writeReport(dest string, summary ui.RunSummary, presenter ui.Presenter, logger logx.Logger) {
	report := output.NewReport(summary, version, time.Now())
	if dest == "-" {
		if err := output.EncodeJSON(os.Stdout, report, true); err != nil {
			logger.Err(err, "phase", "report")
		}
		return
	}
	path, err := output.WriteJSON(dest, report)
	if err != nil {
		logger.Err(err, "phase", "report")
		presenter.Warning("Could not write report: " + err.Error())
		return
	}
	presenter.Info("Report written to " + path)
}

// buildTools builds every stage's enumerator from the registry. A required
// tool that cannot be built is fatal; the optional archive tool is dropped.
func buildTools(logger logx.Logger, cfg config.Config) (map[string]ports.Enumerator, error) {
	reg := registry.Global()
	tools := make(map[string]ports.Enumerator)

	for _, stage := range usecases.DefaultStages() {
		tool, err := reg.Build(stage.Tool, cfg.Tool(stage.Tool), logger)
		if err != nil {
			if meta, ok := reg.Metadata(stage.Tool); (ok && meta.Optional) || stage.Optional {
				logger.Warn("optional tool unavailable", "tool", stage.Tool, "error", err.Error())
				continue
			}
			return nil, fmt.Errorf("failed to build %s: %w", stage.Tool, err)
		}
		tools[stage.Tool] = tool
	}

	logger.Debug("tools built", "registered", reg.List(), "built", len(tools))
	return tools, nil
}

func operatorOptions(cfg config.Config) console.Options {
	opts := console.Options{
		Archive:      console.ArchivePolicy(cfg.Prompt.Archive),
		Mode:         cfg.Prompt.Mode,
		AddParams:    cfg.Prompt.AddParams,
		RemoveParams: cfg.Prompt.RemoveParams,
	}
	if cfg.Prompt.ParamsSet {
		opts.Params = append([]string{}, cfg.Prompt.Params...)
	}
	return opts
}

// exitCode maps operator and configuration mistakes to 2, everything else to 1.
func exitCode(err error) int {
	if errors.IsInvalidInput(err) || errors.IsInvalidSelection(err) {
		return exitUsage
	}
	return exitFailure
}

// rootContextWithSignals returns a context cancelled on SIGINT or SIGTERM.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}
	return base, cleanup
}
