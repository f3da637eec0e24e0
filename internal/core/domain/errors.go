// internal/core/domain/errors.go
package domain

import (
	perrors "sqlihunt/internal/platform/errors"
)

// Domain-level errors. Each wraps a platform sentinel so callers can
// classify with errors.Is at either granularity.
var (
	ErrEmptyTarget   = perrors.Wrap(perrors.ErrInvalidInput, "target cannot be empty")
	ErrInvalidDomain = perrors.Wrap(perrors.ErrInvalidInput, "invalid domain")

	ErrInvalidScanMode  = perrors.Wrap(perrors.ErrInvalidSelection, "invalid testing mode")
	ErrInvalidParamEdit = perrors.Wrap(perrors.ErrInvalidSelection, "invalid parameter action")
	ErrEmptyParamName   = perrors.Wrap(perrors.ErrInvalidInput, "parameter name cannot be empty")
	ErrInvalidBatchSize = perrors.Wrap(perrors.ErrInvalidInput, "batch size must be positive")
	ErrUnknownArtifact  = perrors.Wrap(perrors.ErrNotFound, "unknown artifact")
)
