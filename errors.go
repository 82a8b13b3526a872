package authstate

import (
	"errors"
	"fmt"
)

// ErrEmptyHandle indicates an operation was called with a handle that is
// empty after trimming whitespace. Use errors.Is() to check for it.
var ErrEmptyHandle = errors.New("handle is empty")

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindFilesystem represents errors from the underlying filesystem,
	// other than "file not found" conditions the store tolerates.
	KindFilesystem = "filesystem"

	// KindConfiguration represents errors resolving the store configuration,
	// such as an unreadable defaults file or an undeterminable home directory.
	KindConfiguration = "configuration"
)

// StoreError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// StoreError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type StoreError struct {
	// Op is the operation that failed (e.g., "Save", "FilePath").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindFilesystem).
	Kind string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("authstate: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("authstate: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements error matching for StoreError, allowing comparison against
// another StoreError by kind (and op, when the target sets one) in addition
// to the underlying error chain.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*StoreError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// newValidationError creates a StoreError with KindValidation.
func newValidationError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindValidation, Err: err}
}

// newFilesystemError creates a StoreError with KindFilesystem.
func newFilesystemError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindFilesystem, Err: err}
}

// newConfigurationError creates a StoreError with KindConfiguration.
func newConfigurationError(op string, err error) *StoreError {
	return &StoreError{Op: op, Kind: KindConfiguration, Err: err}
}
