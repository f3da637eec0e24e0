// internal/core/domain/params.go
package domain

import (
	"fmt"
	"strings"
)

// defaultHighRiskParams are query parameter names commonly wired straight
// into SQL queries.
var defaultHighRiskParams = []string{"id", "query", "search", "user", "page", "article", "order", "product"}

// DefaultHighRiskParams returns a copy of the built-in parameter list.
func DefaultHighRiskParams() []string {
	out := make([]string, len(defaultHighRiskParams))
	copy(out, defaultHighRiskParams)
	return out
}

// ParameterSet is an insertion-ordered set of parameter names.
// The zero value is an empty set ready to use.
type ParameterSet struct {
	names []string
}

// NewParameterSet builds a set from names, keeping first-seen order and
// skipping blanks and duplicates.
func NewParameterSet(names ...string) ParameterSet {
	var p ParameterSet
	for _, n := range names {
		_, _ = p.Add(n)
	}
	return p
}

// DefaultParameterSet returns the built-in high-risk set.
func DefaultParameterSet() ParameterSet {
	return NewParameterSet(defaultHighRiskParams...)
}

// Names returns the parameter names in order.
func (p ParameterSet) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p ParameterSet) Len() int {
	return len(p.names)
}

func (p ParameterSet) Contains(name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range p.names {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends name unless it is already present. It reports whether the
// set changed. Blank names are rejected: "=" alone would match every URL.
func (p *ParameterSet) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyParamName
	}
	if p.Contains(name) {
		return false, nil
	}
	p.names = append(p.names, name)
	return true, nil
}

// Remove deletes name if present and reports whether the set changed.
func (p *ParameterSet) Remove(name string) bool {
	name = strings.TrimSpace(name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i:i], p.names[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns an independent copy.
func (p ParameterSet) Clone() ParameterSet {
	return ParameterSet{names: p.Names()}
}

// Apply replays edits on a copy of p. Processing stops at the first
// ParamDone; edits after it are ignored.
func (p ParameterSet) Apply(edits []ParamEdit) (ParameterSet, error) {
	out := p.Clone()
	for _, e := range edits {
		switch e.Action {
		case ParamAdd:
			if _, err := out.Add(e.Name); err != nil {
				return p, err
			}
		case ParamRemove:
			out.Remove(e.Name)
		case ParamDone:
			return out, nil
		default:
			return p, fmt.Errorf("%w: %q", ErrInvalidParamEdit, e.Action)
		}
	}
	return out, nil
}

func (p ParameterSet) String() string {
	return "[" + strings.Join(p.names, ", ") + "]"
}

// ParamAction is one step of the interactive parameter customization loop.
type ParamAction string

const (
	ParamAdd    ParamAction = "add"
	ParamRemove ParamAction = "remove"
	ParamDone   ParamAction = "done"
)

// ParseParamAction maps operator input to an action.
func ParseParamAction(s string) (ParamAction, error) {
	switch a := ParamAction(strings.ToLower(strings.TrimSpace(s))); a {
	case ParamAdd, ParamRemove, ParamDone:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidParamEdit, s)
	}
}

// ParamEdit is a single add/remove/done instruction.
type ParamEdit struct {
	Action ParamAction
	Name   string
}
