// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sqlihunt/internal/platform/errors"
	"sqlihunt/internal/platform/ui"
)

// Report is the JSON document written at the end of a session.
type Report struct {
	Tool        string     `json:"tool"`
	Version     string     `json:"version"`
	GeneratedAt time.Time  `json:"generated_at"`
	Target      string     `json:"target"`
	State       string     `json:"state"`
	Mode        string     `json:"mode,omitempty"`
	Params      []string   `json:"params,omitempty"`
	Artifacts   []Artifact `json:"artifacts"`
	Dispatch    Dispatch   `json:"dispatch"`
	DurationMS  int64      `json:"duration_ms"`
}

// Artifact is one stored line set.
type Artifact struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Lines int    `json:"lines"`
}

// Dispatch describes how scans were handed to the scanner.
type Dispatch struct {
	Mode    string  `json:"mode,omitempty"`
	Scanned int     `json:"scanned"`
	Failed  int     `json:"failed"`
	Batches []Batch `json:"batches,omitempty"`
}

// Batch is one launched background scan.
type Batch struct {
	Name string `json:"name"`
	URLs int    `json:"urls"`
	PID  int    `json:"pid"`
	Log  string `json:"log"`
}

// NewReport converts a run summary into a report.
func NewReport(summary ui.RunSummary, version string, now time.Time) Report {
	r := Report{
		Tool:        "sqlihunt",
		Version:     version,
		GeneratedAt: now.UTC(),
		Target:      summary.Target,
		State:       summary.State,
		Mode:        summary.Mode,
		Params:      summary.Params,
		Artifacts:   make([]Artifact, 0, len(summary.Artifacts)),
		Dispatch: Dispatch{
			Mode:    summary.Dispatch,
			Scanned: summary.Scanned,
			Failed:  summary.Failed,
		},
		DurationMS: summary.Duration.Milliseconds(),
	}
	for _, a := range summary.Artifacts {
		r.Artifacts = append(r.Artifacts, Artifact{Name: a.Name, File: a.File, Lines: a.Lines})
	}
	for _, b := range summary.Batches {
		r.Dispatch.Batches = append(r.Dispatch.Batches, Batch{Name: b.Name, URLs: b.URLs, PID: b.PID, Log: b.Log})
	}
	return r
}

// sanitizeDomainName turns a domain into a directory name: "example.com" -> "example_com".
func sanitizeDomainName(domain string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, domain)
}

// WriteJSON writes r under dir/<target>/ with a timestamped file name and
// returns the file path.
func WriteJSON(dir string, r Report) (string, error) {
	if dir == "" {
		dir = "."
	}
	fullDir := filepath.Join(dir, sanitizeDomainName(r.Target))
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", errors.Mark(errors.Wrap(err, "create report directory"), errors.ErrStorage)
	}

	name := fmt.Sprintf("sqlihunt_%s_%s.json", r.Target, r.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(fullDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "create report file"), errors.ErrStorage)
	}
	defer f.Close()

	if err := EncodeJSON(f, r, true); err != nil {
		return "", err
	}
	return path, nil
}

// EncodeJSON writes r to w, indented when pretty is set.
func EncodeJSON(w io.Writer, r Report, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode report")
	}
	return nil
}
