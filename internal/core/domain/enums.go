// internal/core/domain/enums.go
package domain

import (
	"fmt"
	"strings"
)

// ScanMode selecciona qué artefacto alimenta al dispatcher de escaneo.
type ScanMode string

const (
	// ScanModePrioritized scans only URLs carrying a high-risk parameter.
	ScanModePrioritized ScanMode = "prioritized"

	// ScanModeGeneral scans every unique-parameter URL.
	ScanModeGeneral ScanMode = "general"
)

// IsValid reports whether m is a known mode.
func (m ScanMode) IsValid() bool {
	switch m {
	case ScanModePrioritized, ScanModeGeneral:
		return true
	default:
		return false
	}
}

func (m ScanMode) String() string {
	return string(m)
}

// Source returns the artifact the dispatcher reads in this mode.
func (m ScanMode) Source() ArtifactName {
	if m == ScanModePrioritized {
		return ArtifactPrioritizedURLs
	}
	return ArtifactUniqueParamURLs
}

// ParseScanMode accepts the menu numbers ("1", "2") as well as the names
// and a few short aliases.
func ParseScanMode(s string) (ScanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "prioritized", "prioritised", "specified", "p":
		return ScanModePrioritized, nil
	case "2", "general", "g":
		return ScanModeGeneral, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScanMode, s)
	}
}

// SessionState representa la decisión de caché para el target solicitado.
type SessionState string

const (
	// SessionFresh means no cached domain, or a different one: run everything.
	SessionFresh SessionState = "fresh"

	// SessionCached means the cached artifacts belong to the requested domain.
	SessionCached SessionState = "cached"
)

func (s SessionState) String() string {
	return string(s)
}

// ResolveSessionState compara el dominio en caché con el solicitado.
func ResolveSessionState(cached string, hasCached bool, requested Target) SessionState {
	if hasCached && cached != "" && cached == requested.Root {
		return SessionCached
	}
	return SessionFresh
}
