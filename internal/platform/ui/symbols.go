// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status is the state of a stage or scan.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusWarning
	StatusError
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol returns the glyph drawn next to a stage line.
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusRunning:
		return "⣾"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

func (s Status) Color() pterm.Color {
	switch s {
	case StatusRunning:
		return pterm.FgCyan
	case StatusSuccess:
		return pterm.FgGreen
	case StatusWarning:
		return pterm.FgYellow
	case StatusError:
		return pterm.FgRed
	case StatusPending, StatusSkipped:
		return pterm.FgGray
	default:
		return pterm.FgDefault
	}
}

func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

var (
	IconTarget  = "🎯"
	IconStage   = "🔄"
	IconFolder  = "📁"
	IconStats   = "📊"
	IconTime    = "⏱"
	IconSyringe = "💉"
)

var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
