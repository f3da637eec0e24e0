// internal/core/domain/target.go
package domain

import (
	"fmt"

	"sqlihunt/internal/platform/validator"
)

// Target is the domain the pipeline enumerates and scans.
type Target struct {
	// Root is the normalized registrable domain (e.g. "example.com").
	Root string
}

// NewTarget normalizes raw operator input into a Target. Call Validate
// before handing it to the pipeline.
func NewTarget(raw string) Target {
	return Target{Root: validator.NormalizeDomain(raw)}
}

// Validate rejects empty targets and anything that is not a host name under
// a public suffix. The root ends up as a discrete argv element of external
// tools, so this is also what keeps flag-like input ("-o", "--x") out.
func (t Target) Validate() error {
	if t.Root == "" {
		return ErrEmptyTarget
	}
	if !validator.IsDomain(t.Root) || !validator.HasRegistrableDomain(t.Root) {
		return fmt.Errorf("%w: %q", ErrInvalidDomain, t.Root)
	}
	return nil
}

// IsInScope reports whether host is the root or one of its subdomains.
func (t Target) IsInScope(host string) bool {
	return validator.InScope(host, t.Root)
}

func (t Target) String() string {
	return t.Root
}
