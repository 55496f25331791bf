// Package errors provides standardized error handling for the defapp engine.
// It defines common error kinds, constants, and helper functions for
// consistent error creation, wrapping, and handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Environment error kinds
	HomeDirUnavailable
	// Input error kinds
	InvalidExtension
	InvalidSelection
	// Persistence error kinds
	ConfigIO
	ConfigParse
	MissingHandlers
	// Resolution error kinds
	MissingBundleInfo
	AppNotFound
	// External process error kinds
	CommandFailed
)

// ErrMissingHandlers reports a preference document whose LSHandlers
// collection cannot be coerced to a list even after synthesis.
var ErrMissingHandlers = New(MissingHandlers, "preference file has no usable LSHandlers collection")

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// New creates a new application error of the given kind
func New(kind ErrorKind, msg string) *ApplicationError {
	return &ApplicationError{msg: msg, kind: kind}
}

// Newf creates a new application error with a formatted message
func Newf(kind ErrorKind, format string, args ...interface{}) *ApplicationError {
	return &ApplicationError{msg: fmt.Sprintf(format, args...), kind: kind}
}

// Wrap creates a new application error wrapping an underlying error
func Wrap(kind ErrorKind, msg string, err error) *ApplicationError {
	return &ApplicationError{msg: msg, err: err, kind: kind}
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// SelectionError represents errors caused by a bad user selection (a raw
// extension or application path that cannot be used)
type SelectionError struct {
	ApplicationError
	input string
}

// NewSelectionError creates a new selection error for the given raw input
func NewSelectionError(msg string, input string, kind ErrorKind, err error) *SelectionError {
	return &SelectionError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		input:            input,
	}
}

// Error returns the selection error message
func (e *SelectionError) Error() string {
	if e.input != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.input, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.input)
	}
	return e.ApplicationError.Error()
}

// Input returns the raw input associated with the error
func (e *SelectionError) Input() string {
	return e.input
}

// Kinder is implemented by errors that carry an ErrorKind
type Kinder interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first error in err's chain that carries one,
// or Unknown
func KindOf(err error) ErrorKind {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}
