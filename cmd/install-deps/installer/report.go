package installer

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
)

// Report renders results as a pterm table on stdout. Quiet mode instead
// prints one line per unusable tool to w.
func Report(w io.Writer, title string, results []Result, quiet bool) {
	if quiet {
		for _, r := range results {
			if !r.OK() && r.Status != StatusSkipped {
				fmt.Fprintf(w, "%s: %s\n", r.Tool.Name, describe(r))
			}
		}
		return
	}

	pterm.DefaultSection.Println(title)
	rows := pterm.TableData{{"Tool", "Status", "Version", "Detail"}}
	for _, r := range results {
		rows = append(rows, []string{r.Tool.Name, statusLabel(r), r.Version, describe(r)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(rows).Render(); err != nil {
		pterm.Error.Println(err.Error())
	}
}

// Missing counts required tools that are not usable.
func Missing(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Tool.Required && !r.OK() {
			n++
		}
	}
	return n
}

func statusLabel(r Result) string {
	switch r.Status {
	case StatusInstalled, StatusDone:
		return pterm.Green(string(r.Status))
	case StatusMissing:
		if !r.Tool.Required {
			return pterm.Yellow("missing (optional)")
		}
		return pterm.Red(string(r.Status))
	case StatusSkipped:
		return pterm.Gray(string(r.Status))
	default:
		return pterm.Red(string(r.Status))
	}
}

func describe(r Result) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Status == StatusDone:
		return fmt.Sprintf("%s in %s", r.Path, r.Duration.Round(time.Millisecond))
	case r.Path != "":
		return r.Path
	case r.Status == StatusMissing:
		return r.Tool.Description
	}
	return ""
}
