// Package errors provides a lightweight structured error type (ResolveError)
// for category-based classification in the resolver, HTTP handlers and CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a resolve error for classification
type ErrorCategory string

const (
	// Caller and configuration errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content availability errors
	CategoryNotFound  ErrorCategory = "not_found"
	CategoryTransport ErrorCategory = "transport"

	// Infrastructure errors
	CategoryStorage  ErrorCategory = "storage"
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

// ResolveError is a structured error with category, retryability, and context
type ResolveError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ResolveError
type ContextFields map[string]any

// Error implements the error interface
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ResolveError) WithContext(key string, value any) *ResolveError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ResolveError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ResolveError {
	return &ResolveError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ResolveError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ResolveError {
	return &ResolveError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable ResolveError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *ResolveError {
	return &ResolveError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// As extracts the first ResolveError in err's chain.
func As(err error) (*ResolveError, bool) {
	var re *ResolveError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsCategory checks if an error (or any error it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if re, ok := As(err); ok {
		return re.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if re, ok := As(err); ok {
		return re.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ResolveError
func GetCategory(err error) ErrorCategory {
	if re, ok := As(err); ok {
		return re.Category
	}
	return CategoryInternal
}
