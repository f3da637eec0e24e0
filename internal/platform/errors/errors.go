// Package errors provides error types and utilities for sqlihunt.
// It extends the standard errors package with wrapping helpers and the
// sentinel errors the pipeline uses to classify failures.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrInvalidInput indicates invalid input was provided (bad domain, bad config)
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSelection indicates the operator picked an unknown menu option
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrToolNotFound indicates an external tool binary is not on PATH
	ErrToolNotFound = errors.New("external tool not found")

	// ErrToolFailed indicates an external tool exited unsuccessfully
	ErrToolFailed = errors.New("external tool failed")

	// ErrStorage indicates an artifact could not be read or written
	ErrStorage = errors.New("artifact storage failure")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Mark attaches a sentinel to err so callers can classify it with Is while
// the original cause stays reachable through Unwrap.
func Mark(err, sentinel error) error {
	if err == nil {
		return nil
	}
	return errors.Join(sentinel, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsInvalidSelection reports whether the operator chose an unknown option
func IsInvalidSelection(err error) bool {
	return Is(err, ErrInvalidSelection)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsToolNotFound reports whether an external binary was missing
func IsToolNotFound(err error) bool {
	return Is(err, ErrToolNotFound)
}

// IsToolFailed reports whether an external tool run failed
func IsToolFailed(err error) bool {
	return Is(err, ErrToolFailed)
}

// IsStorage reports whether the error came from the artifact store
func IsStorage(err error) bool {
	return Is(err, ErrStorage)
}
