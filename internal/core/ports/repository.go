// internal/core/ports/repository.go
package ports

import "sqlihunt/internal/core/domain"

// ArtifactStore owns the per-stage artifacts and the last-processed-domain
// marker. Pipeline code talks only to this interface, so a file-backed store
// and an in-memory store are interchangeable.
type ArtifactStore interface {
	// LoadLastDomain returns the recorded domain; ok is false when none is.
	LoadLastDomain() (domain string, ok bool, err error)

	// SaveLastDomain records d, replacing any previous value.
	SaveLastDomain(d string) error

	// ResetAll deletes every known artifact, every batch artifact and the
	// domain marker. Missing entries are not an error.
	ResetAll() error

	// ResetBatches deletes every batch artifact and its scan log, leaving
	// the other artifacts and the marker alone.
	ResetBatches() error

	// ReadLines returns the artifact's non-blank lines. A missing artifact
	// reads as empty.
	ReadLines(name domain.ArtifactName) ([]string, error)

	// WriteLines replaces the artifact's content.
	WriteLines(name domain.ArtifactName, lines []string) error

	// AppendLines adds lines to the end of the artifact, creating it if needed.
	AppendLines(name domain.ArtifactName, lines []string) error

	// Locate returns a reference external tools can open (a file path for
	// file-backed stores).
	Locate(name domain.ArtifactName) (string, error)
}
