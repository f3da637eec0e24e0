// internal/core/ports/scanner.go
package ports

import (
	"context"

	"sqlihunt/internal/core/domain"
)

// Scanner drives the external SQL-injection tool.
type Scanner interface {
	// Name returns the tool name.
	Name() string

	// ScanURL tests a single URL and blocks until the tool exits.
	ScanURL(ctx context.Context, url string) error

	// StartBatch launches the tool against a batch artifact located at
	// locator and returns as soon as the process is running.
	StartBatch(batch domain.Batch, locator string) (RunningScan, error)
}

// RunningScan is a launched batch scan.
type RunningScan interface {
	// PID is the operating-system process id.
	PID() int

	// LogPath is where the process output is written, if anywhere.
	LogPath() string

	// Wait blocks until the process exits.
	Wait() error
}
