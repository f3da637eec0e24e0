// internal/core/usecases/dispatch_service.go
package usecases

import (
	"context"
	"fmt"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/ui"
	"sqlihunt/internal/platform/workerpool"
)

// DispatchMode is the path the dispatcher took.
type DispatchMode string

const (
	DispatchEmpty      DispatchMode = "empty"
	DispatchSequential DispatchMode = "sequential"
	DispatchBatched    DispatchMode = "batched"
)

// ScanFailure is one URL (sequential) or batch (batched) that failed.
type ScanFailure struct {
	Target string
	Err    error
}

// LaunchedBatch is a batch scan that is running in the background.
type LaunchedBatch struct {
	Batch   domain.Batch
	Locator string
	PID     int
	LogPath string
}

// BatchOutcome is how a launched batch ended. Only available through Wait.
type BatchOutcome struct {
	Name string
	Err  error
}

// DispatchReport describes what Dispatch did.
type DispatchReport struct {
	Mode     DispatchMode
	Source   domain.ArtifactName
	Total    int
	Scanned  int
	Failures []ScanFailure
	Batches  []LaunchedBatch

	group *workerpool.Group
}

// Failed counts failed URLs or batch launches.
func (r *DispatchReport) Failed() int {
	return len(r.Failures)
}

// Wait blocks until every launched batch process exits. It returns nil for
// the empty and sequential paths. Calling it is optional.
func (r *DispatchReport) Wait() []BatchOutcome {
	if r == nil || r.group == nil {
		return nil
	}
	results := r.group.Wait()
	out := make([]BatchOutcome, len(results))
	for i, res := range results {
		out[i] = BatchOutcome{Name: res.Task.Name(), Err: res.Error}
	}
	return out
}

// Done is closed once every launched batch has exited. It is nil when
// nothing was launched.
func (r *DispatchReport) Done() <-chan struct{} {
	if r == nil || r.group == nil {
		return nil
	}
	return r.group.Done()
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Store     ports.ArtifactStore
	Scanner   ports.Scanner
	BatchSize int
	Presenter ui.Presenter
	Logger    logx.Logger
}

// Dispatcher feeds a URL artifact to the scanner: one blocking run per URL
// up to BatchSize URLs, one background run per batch file above it.
type Dispatcher struct {
	store     ports.ArtifactStore
	scanner   ports.Scanner
	batchSize int
	presenter ui.Presenter
	logger    logx.Logger
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.BatchSize <= 0 {
		opts.BatchSize = domain.DefaultBatchSize
	}
	if opts.Presenter == nil {
		opts.Presenter = ui.NewNoopPresenter()
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Dispatcher{
		store:     opts.Store,
		scanner:   opts.Scanner,
		batchSize: opts.BatchSize,
		presenter: opts.Presenter,
		logger:    opts.Logger.With("component", "dispatcher"),
	}
}

// Dispatch scans every line of source. An empty artifact is reported as
// nothing to test and runs no scanner.
func (d *Dispatcher) Dispatch(ctx context.Context, source domain.ArtifactName) (*DispatchReport, error) {
	urls, err := d.store.ReadLines(source)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", source)
	}

	report := &DispatchReport{Source: source, Total: len(urls)}
	switch {
	case len(urls) == 0:
		report.Mode = DispatchEmpty
		d.logger.Info("nothing to test", "source", source)
		d.presenter.Info("No URLs to test in " + source.String())
		return report, nil
	case !domain.NeedsBatching(len(urls), d.batchSize):
		report.Mode = DispatchSequential
		return report, d.scanSequential(ctx, urls, report)
	default:
		report.Mode = DispatchBatched
		return report, d.launchBatches(ctx, urls, report)
	}
}

func (d *Dispatcher) scanSequential(ctx context.Context, urls []string, report *DispatchReport) error {
	d.logger.Info("sequential scan", "urls", len(urls), "scanner", d.scanner.Name())

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.presenter.Info(fmt.Sprintf("[%d/%d] %s %s", i+1, len(urls), d.scanner.Name(), url))

		err := d.scanner.ScanURL(ctx, url)
		report.Scanned++
		if err != nil {
			report.Failures = append(report.Failures, ScanFailure{Target: url, Err: err})
			d.logger.Warn("scan failed", "url", url, "error", err.Error())
			d.presenter.Warning(fmt.Sprintf("Scan failed for %s: %v", url, err))
		}
	}
	return nil
}

// launchBatches clears batches left by an earlier dispatch, writes every
// batch artifact, then starts one scanner per batch. A batch that fails to
// start is recorded and the rest still launch.
func (d *Dispatcher) launchBatches(ctx context.Context, urls []string, report *DispatchReport) error {
	batches, err := domain.Partition(urls, d.batchSize)
	if err != nil {
		return err
	}
	if err := d.store.ResetBatches(); err != nil {
		return errors.Wrap(err, "clear previous batches")
	}

	locators := make([]string, len(batches))
	for i, b := range batches {
		if err := d.store.WriteLines(b.Name, b.URLs); err != nil {
			return errors.Wrapf(err, "write %s", b.Name)
		}
		loc, err := d.store.Locate(b.Name)
		if err != nil {
			return errors.Wrapf(err, "locate %s", b.Name)
		}
		locators[i] = loc
	}

	d.logger.Info("batched scan", "urls", len(urls), "batches", len(batches), "batch_size", d.batchSize)

	tasks := make([]workerpool.Task, 0, len(batches))
	for i, b := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		scan, err := d.scanner.StartBatch(b, locators[i])
		if err != nil {
			report.Failures = append(report.Failures, ScanFailure{Target: b.Name.String(), Err: err})
			d.logger.Warn("batch launch failed", "batch", b.Name, "error", err.Error())
			d.presenter.Warning(fmt.Sprintf("Could not start %s: %v", b.Name, err))
			continue
		}

		report.Batches = append(report.Batches, LaunchedBatch{
			Batch:   b,
			Locator: locators[i],
			PID:     scan.PID(),
			LogPath: scan.LogPath(),
		})
		tasks = append(tasks, &batchWaitTask{name: b.Name.String(), scan: scan})
		d.logger.Debug("batch launched", "batch", b.Name, "urls", len(b.URLs), "pid", scan.PID())
	}

	// The group only observes the processes; they are detached and keep
	// running if the session ends first.
	group, err := workerpool.Launch(context.WithoutCancel(ctx), tasks, workerpool.Config{Logger: d.logger})
	if err != nil {
		return errors.Wrap(err, "track batch scans")
	}
	report.group = group
	return nil
}

// batchWaitTask adapts a RunningScan to a workerpool task.
type batchWaitTask struct {
	name string
	scan ports.RunningScan
}

func (t *batchWaitTask) Name() string { return t.name }

func (t *batchWaitTask) Execute(context.Context) error {
	return t.scan.Wait()
}
