// Package errors provides a lightweight structured error type (ThreadTableError)
// for category-based classification in the transformation core and the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a ThreadTableError for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryDocument   ErrorCategory = "document"

	// Local I/O errors
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ThreadTableError is a structured error with category, severity and context
type ThreadTableError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ThreadTableError
type ContextFields map[string]any

// Error implements the error interface
func (e *ThreadTableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ThreadTableError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ThreadTableError) WithContext(key string, value any) *ThreadTableError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ThreadTableError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ThreadTableError {
	return &ThreadTableError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ThreadTableError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ThreadTableError {
	return &ThreadTableError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first ThreadTableError in err's chain.
func As(err error) (*ThreadTableError, bool) {
	var tte *ThreadTableError
	if stdErrors.As(err, &tte) {
		return tte, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if tte, ok := As(err); ok {
		return tte.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ThreadTableError
func GetCategory(err error) ErrorCategory {
	if tte, ok := As(err); ok {
		return tte.Category
	}
	return CategoryInternal
}
