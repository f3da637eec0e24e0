package usecases

import (
	"context"
	"errors"
	"testing"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
	perrors "sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/logx"
	"sqlihunt/internal/platform/ui"
	"sqlihunt/internal/testutil"
)

type pipelineFixture struct {
	store     *recordingStore
	subfinder *mockEnumerator
	httpx     *mockEnumerator
	katana    *mockEnumerator
	wayback   *mockEnumerator
}

func newPipelineFixture() *pipelineFixture {
	return &pipelineFixture{
		store:     newRecordingStore(),
		subfinder: newMockEnumerator("subfinder", "shop.example.com", "blog.example.com"),
		httpx:     newMockEnumerator("httpx", "https://shop.example.com", "https://blog.example.com"),
		katana:    newMockEnumerator("katana", testutil.FixtureCrawledURLs[:5]...),
		wayback:   newMockEnumerator("waybackurls", testutil.FixtureCrawledURLs[5:]...),
	}
}

func (f *pipelineFixture) tools() map[string]ports.Enumerator {
	return map[string]ports.Enumerator{
		"subfinder":   f.subfinder,
		"httpx":       f.httpx,
		"katana":      f.katana,
		"waybackurls": f.wayback,
	}
}

func (f *pipelineFixture) orchestrator() *PipelineOrchestrator {
	return NewPipelineOrchestrator(PipelineOrchestratorOptions{
		Tools:  f.tools(),
		Store:  f.store,
		Logger: logx.Discard(),
	})
}

func TestPipeline_RunsStagesInOrder(t *testing.T) {
	f := newPipelineFixture()
	target := domain.NewTarget("example.com")

	report, err := f.orchestrator().Run(context.Background(), target, true)
	testutil.AssertNoError(t, err, "run")

	testutil.AssertEqual(t, f.subfinder.inputs[0], []string(nil), "first stage has no input")
	testutil.AssertEqual(t, f.httpx.inputs[0], []string{"shop.example.com", "blog.example.com"}, "httpx reads subdomains")
	testutil.AssertEqual(t, f.katana.inputs[0], []string{"https://shop.example.com", "https://blog.example.com"}, "katana reads live hosts")
	testutil.AssertEqual(t, f.wayback.inputs[0], []string{"https://shop.example.com", "https://blog.example.com"}, "archive reads live hosts")

	ops := f.store.operations()
	testutil.AssertEqual(t, ops, []storeOp{
		{Op: "write", Name: "subdomains"},
		{Op: "write", Name: "live-subdomains"},
		{Op: "write", Name: "crawled-endpoints"},
		{Op: "append", Name: "archived-endpoints"},
		{Op: "write", Name: "merged-endpoints"},
		{Op: "write", Name: "parameterized-urls"},
		{Op: "write", Name: "unique-param-urls"},
	}, "artifact write order")

	testutil.AssertEqual(t, report.Normalize.Unique, 4, "unique urls")
	testutil.AssertLen(t, report.Stages, 4, "stage outcomes")
	archive, ok := report.Outcome("archive")
	testutil.AssertTrue(t, ok, "archive outcome")
	testutil.AssertEqual(t, archive.Status, ui.StatusSuccess, "archive ran")
}

func TestPipeline_OptionalStageDeclined(t *testing.T) {
	f := newPipelineFixture()

	report, err := f.orchestrator().Run(context.Background(), domain.NewTarget("example.com"), false)
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, f.wayback.callCount(), 0, "archive not run")

	archive, _ := report.Outcome("archive")
	testutil.AssertEqual(t, archive.Status, ui.StatusSkipped, "skipped")
	testutil.AssertEqual(t, report.Normalize.Merged, 5, "merge treats missing archive as empty")
}

func TestPipeline_OptionalStageFailureIsWarning(t *testing.T) {
	f := newPipelineFixture()
	f.wayback.err = errors.New("archive offline")

	report, err := f.orchestrator().Run(context.Background(), domain.NewTarget("example.com"), true)
	testutil.AssertNoError(t, err, "optional failure does not abort")

	archive, _ := report.Outcome("archive")
	testutil.AssertEqual(t, archive.Status, ui.StatusWarning, "warning")
	testutil.AssertFalse(t, f.store.Has(domain.ArtifactArchivedEndpoints), "archive artifact left absent")
	testutil.AssertTrue(t, f.store.Has(domain.ArtifactUniqueParamURLs), "pipeline continued")
}

func TestPipeline_RequiredStageFailureAborts(t *testing.T) {
	f := newPipelineFixture()
	f.httpx.err = perrors.Mark(errors.New("httpx exited with error"), perrors.ErrToolFailed)

	report, err := f.orchestrator().Run(context.Background(), domain.NewTarget("example.com"), true)
	testutil.AssertTrue(t, perrors.IsToolFailed(err), "tool failure surfaces")
	testutil.AssertEqual(t, f.katana.callCount(), 0, "later stages not run")
	testutil.AssertLen(t, report.Stages, 2, "stopped at httpx")
	testutil.AssertFalse(t, f.store.Has(domain.ArtifactLiveSubdomains), "failed stage writes nothing")
}

func TestPipeline_Preflight(t *testing.T) {
	f := newPipelineFixture()
	f.wayback.initErr = perrors.Wrap(perrors.ErrToolNotFound, "waybackurls")

	p := f.orchestrator()
	warnings, err := p.Preflight()
	testutil.AssertNoError(t, err, "optional tool missing is fine")
	testutil.AssertLen(t, warnings, 1, "one warning")
	testutil.AssertFalse(t, p.HasOptional(), "archive disabled")

	_, err = p.Run(context.Background(), domain.NewTarget("example.com"), true)
	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, f.wayback.callCount(), 0, "disabled tool never runs")

	f2 := newPipelineFixture()
	f2.katana.initErr = perrors.Wrap(perrors.ErrToolNotFound, "katana")
	_, err = f2.orchestrator().Preflight()
	testutil.AssertTrue(t, perrors.IsToolNotFound(err), "required tool missing")
}

func TestPipeline_PreflightMissingAdapter(t *testing.T) {
	p := NewPipelineOrchestrator(PipelineOrchestratorOptions{
		Tools:  map[string]ports.Enumerator{"subfinder": newMockEnumerator("subfinder")},
		Store:  newRecordingStore(),
		Logger: logx.Discard(),
	})
	_, err := p.Preflight()
	testutil.AssertTrue(t, perrors.IsToolNotFound(err), "httpx adapter missing")
}
