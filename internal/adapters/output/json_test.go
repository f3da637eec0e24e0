// internal/adapters/output/json_test.go
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sqlihunt/internal/platform/ui"
	"sqlihunt/internal/testutil"
)

var generatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func batchedSummary() ui.RunSummary {
	return ui.RunSummary{
		Target: "example.com",
		State:  "fresh",
		Mode:   "prioritized",
		Params: []string{"id", "user"},
		Artifacts: []ui.ArtifactCount{
			{Name: "subdomains", File: "/w/subdomains.txt", Lines: 4},
			{Name: "prioritized", File: "/w/prioritized.txt", Lines: 450},
		},
		Dispatch: "batched",
		Batches: []ui.BatchInfo{
			{Name: "batch_0", URLs: 200, PID: 4101, Log: "/w/batch_0.log"},
			{Name: "batch_1", URLs: 200, PID: 4102, Log: "/w/batch_1.log"},
			{Name: "batch_2", URLs: 50, PID: 4103, Log: "/w/batch_2.log"},
		},
		Duration: 1500 * time.Millisecond,
	}
}

func TestSanitizeDomainName(t *testing.T) {
	tests := map[string]string{
		"example.com":     "example_com",
		"sub.example.com": "sub_example_com",
		"my-site.io":      "my-site_io",
		"bad/../name":     "bad____name",
	}
	for in, want := range tests {
		testutil.AssertEqual(t, sanitizeDomainName(in), want, in)
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport(batchedSummary(), "1.2.0", generatedAt.In(time.FixedZone("CET", 3600)))

	testutil.AssertEqual(t, r.Tool, "sqlihunt", "tool")
	testutil.AssertEqual(t, r.GeneratedAt, generatedAt, "timestamp normalized to UTC")
	testutil.AssertEqual(t, r.DurationMS, int64(1500), "duration")
	testutil.AssertLen(t, r.Artifacts, 2, "artifacts")
	testutil.AssertEqual(t, r.Dispatch.Mode, "batched", "dispatch mode")
	testutil.AssertLen(t, r.Dispatch.Batches, 3, "batches")
	testutil.AssertEqual(t, r.Dispatch.Batches[2], Batch{Name: "batch_2", URLs: 50, PID: 4103, Log: "/w/batch_2.log"}, "last batch")
}

func TestEncodeJSON(t *testing.T) {
	summary := ui.RunSummary{Target: "example.com", State: "cached", Mode: "general", Dispatch: "empty"}
	r := NewReport(summary, "dev", generatedAt)

	var buf bytes.Buffer
	testutil.AssertNoError(t, EncodeJSON(&buf, r, false), "EncodeJSON")

	out := buf.String()
	testutil.AssertFalse(t, strings.Contains(out, "\n  "), "compact output has no indentation")
	testutil.AssertFalse(t, strings.Contains(out, `"params"`), "empty params omitted")
	testutil.AssertFalse(t, strings.Contains(out, `"batches"`), "empty batches omitted")
	testutil.AssertContains(t, out, `"artifacts":[]`, "artifacts encoded as empty list")
	testutil.AssertContains(t, out, `"generated_at":"2024-05-01T12:00:00Z"`, "timestamp")
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	r := NewReport(batchedSummary(), "1.2.0", generatedAt)

	path, err := WriteJSON(dir, r)
	testutil.AssertNoError(t, err, "WriteJSON")
	testutil.AssertEqual(t, path, filepath.Join(dir, "example_com", "sqlihunt_example.com_20240501_120000.json"), "report path")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err, "read report")

	var decoded Report
	testutil.AssertNoError(t, json.Unmarshal(data, &decoded), "decode report")
	testutil.AssertEqual(t, decoded.Params, []string{"id", "user"}, "params")
	testutil.AssertEqual(t, decoded.Dispatch.Batches[0].PID, 4101, "first batch pid")
}

func TestWriteJSON_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	testutil.AssertNoError(t, os.WriteFile(blocker, []byte("x"), 0o644), "create blocker")

	_, err := WriteJSON(blocker, NewReport(batchedSummary(), "dev", generatedAt))
	testutil.AssertError(t, err, "directory under a regular file")
}
