// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"
)

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// stateLabel renders a session state with its color.
func stateLabel(state string) string {
	if state == "cached" {
		return StyleWarning.Sprint(state)
	}
	return StyleSuccess.Sprint(state)
}
