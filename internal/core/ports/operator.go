// internal/core/ports/operator.go
package ports

import (
	"context"

	"sqlihunt/internal/core/domain"
)

// Operator supplies the decisions a session needs from the person running
// it. Implementations may prompt, read config, or return fixed answers.
type Operator interface {
	// ConfirmArchiveFetch decides whether the optional archive stage runs.
	ConfirmArchiveFetch(ctx context.Context) (bool, error)

	// SelectMode picks prioritized or general testing.
	SelectMode(ctx context.Context) (domain.ScanMode, error)

	// ResolveParams returns the fully resolved high-risk parameter set,
	// starting from defaults.
	ResolveParams(ctx context.Context, defaults domain.ParameterSet) (domain.ParameterSet, error)
}
