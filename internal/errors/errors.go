// Package errors provides typed domain errors.
// Data-quality conditions (missing areas, unmapped tags) are handled by
// local substitution inside the engine and never surface here; these
// types cover malformed input shape and rejected optimizations.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error (programmer error,
	// e.g. a nil configuration or a non-positive target)
	TypeInput Type = "INPUT_ERROR"

	// TypeData indicates unusable unit data (e.g. a selection with no
	// positively-sized units)
	TypeData Type = "DATA_ERROR"

	// TypeConfig indicates a configuration-shape error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeOptimization indicates a rejected optimization request
	TypeOptimization Type = "OPTIMIZATION_ERROR"

	// TypeParsing indicates a rules or units file that failed to parse
	TypeParsing Type = "PARSING_ERROR"

	// TypeNotFound indicates a referenced entity that does not exist
	TypeNotFound Type = "NOT_FOUND"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Inputf creates a formatted input error
func Inputf(format string, args ...interface{}) *Error {
	return Newf(TypeInput, format, args...)
}

// Optimization creates a rejected-optimization error
func Optimization(message string) *Error {
	return New(TypeOptimization, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// NotFound creates a not found error
func NotFound(entity, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", entity, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
