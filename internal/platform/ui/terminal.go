// internal/platform/ui/terminal.go
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewPresenter picks the presenter for the current output: nothing when
// quiet, pterm on a TTY, raw lines otherwise.
func NewPresenter(quiet bool, format LogFormat, out *os.File) Presenter {
	switch {
	case quiet:
		return NewNoopPresenter()
	case format == LogFormatJSON || !IsTerminal(out):
		return NewRawPresenter(io.Writer(out), format)
	default:
		return NewPTermPresenter()
	}
}
