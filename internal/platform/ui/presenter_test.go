package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"

	"sqlihunt/internal/testutil"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func TestRawPresenter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, LogFormatText)
	r.now = fixedClock

	r.Start(SessionInfo{Target: "example.com", WorkDir: "/tmp/w", State: "fresh"})
	r.FinishStage(StageResult{Number: 1, Name: "subdomains", Status: StatusSuccess, Lines: 12, Duration: 1500 * time.Millisecond})
	r.Warning("archive fetch failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertLen(t, lines, 3, "one line per event")
	testutil.AssertEqual(t, lines[0], "2024-05-01T12:00:00Z INFO  session started state=fresh target=example.com workdir=/tmp/w", "sorted logfmt")
	testutil.AssertContains(t, lines[1], "duration=1.5s", "duration formatted")
	testutil.AssertContains(t, lines[1], "status=success", "status")
	testutil.AssertContains(t, lines[2], `WARN  archive fetch failed`, "warning level")
}

func TestRawPresenter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRawPresenter(&buf, LogFormatJSON)
	r.now = fixedClock

	r.Finish(RunSummary{
		Target:   "example.com",
		State:    "cached",
		Mode:     "general",
		Dispatch: "batched",
		Batches:  []BatchInfo{{Name: "batch_0", URLs: 200, PID: 42, Log: "batch_0.log"}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertLen(t, lines, 2, "batch line plus summary")

	var entry map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal([]byte(lines[1]), &entry), "valid json")
	testutil.AssertEqual(t, entry["message"], "session finished", "message")
	data := entry["data"].(map[string]interface{})
	testutil.AssertEqual(t, data["dispatch"], "batched", "dispatch")
	testutil.AssertEqual(t, data["mode"], "general", "mode")
}

func TestFormatValue(t *testing.T) {
	testutil.AssertEqual(t, formatValue("a b"), `"a b"`, "quoted")
	testutil.AssertEqual(t, formatValue("ab"), "ab", "bare")
	testutil.AssertEqual(t, formatValue([]string{"id", "q"}), "id,q", "slice")
	testutil.AssertEqual(t, formatValue(3), "3", "int")
}

func TestFormatDuration(t *testing.T) {
	testutil.AssertEqual(t, formatDuration(250*time.Millisecond), "250ms", "ms")
	testutil.AssertEqual(t, formatDuration(2500*time.Millisecond), "2.5s", "seconds")
	testutil.AssertEqual(t, formatDuration(125*time.Second), "2m5s", "minutes")
}

func TestStatus(t *testing.T) {
	testutil.AssertEqual(t, StatusSuccess.String(), "success", "string")
	testutil.AssertEqual(t, StatusError.Symbol(), "✗", "symbol")
	testutil.AssertEqual(t, Status(99).String(), "unknown", "unknown")
}

func TestDispatchLine(t *testing.T) {
	testutil.AssertEqual(t, dispatchLine(RunSummary{Dispatch: "sequential", Scanned: 3, Failed: 1}), "sequential, 3 scanned, 1 failed", "sequential")
	testutil.AssertEqual(t, dispatchLine(RunSummary{Dispatch: "empty"}), "nothing to test", "empty")
	testutil.AssertEqual(t, dispatchLine(RunSummary{}), "not run", "not run")
}

func TestPTermPresenter_Smoke(t *testing.T) {
	pterm.DisableOutput()
	defer pterm.EnableOutput()

	p := NewPTermPresenter()
	p.Start(SessionInfo{Target: "example.com", WorkDir: ".", State: "cached", Cached: "example.com"})
	p.StartStage(StageInfo{Number: 1, TotalStages: 2, Name: "subdomains", Tool: "subfinder"})
	p.FinishStage(StageResult{Number: 1, Name: "subdomains", Status: StatusSuccess, Lines: 3})
	p.StartStage(StageInfo{Number: 2, TotalStages: 2, Name: "archive"})
	p.FinishStage(StageResult{Number: 2, Name: "archive", Status: StatusSkipped})
	p.Warning("w")
	p.Finish(RunSummary{Target: "example.com", State: "cached", Dispatch: "sequential"})
	testutil.AssertNoError(t, p.Close(), "close")
}

func TestNewPresenter_Quiet(t *testing.T) {
	_, ok := NewPresenter(true, LogFormatText, nil).(*NoopPresenter)
	testutil.AssertTrue(t, ok, "quiet wins")
}
