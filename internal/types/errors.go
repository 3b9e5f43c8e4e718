package types

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrServerNotFound indicates the requested server does not exist
	ErrServerNotFound = errors.New("server not found")

	// ErrInvalidRecord indicates a server record failed validation
	ErrInvalidRecord = errors.New("invalid server record")

	// ErrInvalidConfiguration indicates invalid configuration
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrStorageError indicates a storage operation failed
	ErrStorageError = errors.New("storage error")

	// ErrInvalidRequest indicates an invalid request
	ErrInvalidRequest = errors.New("invalid request")

	// ErrRateLimitExceeded indicates the rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrUnknownLocale indicates no translation bundle matches the requested locale
	ErrUnknownLocale = errors.New("unknown locale")
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("multiple errors: %v", e.Errors)
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e MultiError) Unwrap() []error {
	return e.Errors
}

// Add adds an error to the MultiError
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// SourceError wraps a record source failure with the operation and backend
type SourceError struct {
	Op      string // Operation that failed
	Backend string // memory, sqlite
	Err     error  // Original error
}

func (e SourceError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Backend, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}
