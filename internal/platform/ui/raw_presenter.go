// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogFormat selects the raw presenter's line format.
type LogFormat string

const (
	LogFormatText LogFormat = "text" // logfmt
	LogFormatJSON LogFormat = "json"
)

// RawPresenter writes one line per event. It is used when stdout is not a
// terminal or when the operator asks for machine-readable output.
type RawPresenter struct {
	format LogFormat
	w      io.Writer
	mu     sync.Mutex
	now    func() time.Time
}

func NewRawPresenter(w io.Writer, format LogFormat) *RawPresenter {
	if format != LogFormatJSON {
		format = LogFormatText
	}
	return &RawPresenter{format: format, w: w, now: time.Now}
}

func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now().UTC().Format(time.RFC3339)
	if r.format == LogFormatJSON {
		entry := map[string]interface{}{
			"timestamp": timestamp,
			"level":     level,
			"message":   message,
		}
		if len(fields) > 0 {
			entry["data"] = fields
		}
		data, _ := json.Marshal(entry)
		fmt.Fprintln(r.w, string(data))
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatValue(fields[k])))
	}
	fmt.Fprintln(r.w, strings.Join(parts, " "))
}

// formatValue quotes strings containing spaces.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return formatDuration(val)
	case []string:
		return strings.Join(val, ",")
	default:
		return fmt.Sprint(val)
	}
}

func (r *RawPresenter) Start(info SessionInfo) {
	r.log("INFO", "session started", map[string]interface{}{
		"target":  info.Target,
		"workdir": info.WorkDir,
		"state":   info.State,
	})
}

func (r *RawPresenter) StartStage(stage StageInfo) {
	r.log("INFO", "stage started", map[string]interface{}{
		"stage": stage.Number,
		"name":  stage.Name,
		"tool":  stage.Tool,
	})
}

func (r *RawPresenter) FinishStage(result StageResult) {
	fields := map[string]interface{}{
		"stage":    result.Number,
		"name":     result.Name,
		"status":   result.Status.String(),
		"lines":    result.Lines,
		"duration": result.Duration,
	}
	if result.Detail != "" {
		fields["detail"] = result.Detail
	}
	r.log("INFO", "stage finished", fields)
}

func (r *RawPresenter) Info(msg string)    { r.log("INFO", msg, nil) }
func (r *RawPresenter) Warning(msg string) { r.log("WARN", msg, nil) }
func (r *RawPresenter) Error(msg string)   { r.log("ERROR", msg, nil) }

func (r *RawPresenter) Finish(summary RunSummary) {
	for _, a := range summary.Artifacts {
		r.log("INFO", "artifact", map[string]interface{}{
			"name":  a.Name,
			"file":  a.File,
			"lines": a.Lines,
		})
	}
	for _, b := range summary.Batches {
		r.log("INFO", "batch launched", map[string]interface{}{
			"name": b.Name,
			"urls": b.URLs,
			"pid":  b.PID,
			"log":  b.Log,
		})
	}

	fields := map[string]interface{}{
		"target":   summary.Target,
		"state":    summary.State,
		"dispatch": summary.Dispatch,
		"duration": summary.Duration,
	}
	if summary.Mode != "" {
		fields["mode"] = summary.Mode
	}
	if len(summary.Params) > 0 {
		fields["params"] = summary.Params
	}
	if summary.Dispatch == "sequential" {
		fields["scanned"] = summary.Scanned
		fields["failed"] = summary.Failed
	}
	r.log("INFO", "session finished", fields)
}

func (r *RawPresenter) Close() error { return nil }
