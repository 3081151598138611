// Package errors provides a lightweight structured error type (MigrateError)
// for category-based classification in the CLI and the migration pipelines.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a migration error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Processing errors
	CategoryConvert    ErrorCategory = "convert"
	CategoryRename     ErrorCategory = "rename"
	CategoryProtection ErrorCategory = "protection"
	CategoryFileSystem ErrorCategory = "filesystem"

	// External system integration errors
	CategoryGit     ErrorCategory = "git"
	CategoryPublish ErrorCategory = "publish"
	CategoryStore   ErrorCategory = "store"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// MigrateError is a structured error with category, severity, and context
type MigrateError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for MigrateError
type ContextFields map[string]any

// Error implements the error interface
func (e *MigrateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *MigrateError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MigrateError) WithContext(key string, value any) *MigrateError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the default severity for the category.
func (e *MigrateError) WithSeverity(severity ErrorSeverity) *MigrateError {
	e.Severity = severity
	return e
}

// New creates a MigrateError with the given category and message.
func New(category ErrorCategory, message string) *MigrateError {
	return &MigrateError{Category: category, Severity: SeverityError, Message: message}
}

// Newf creates a MigrateError with a formatted message.
func Newf(category ErrorCategory, format string, args ...any) *MigrateError {
	return New(category, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with category and message.
func Wrap(err error, category ErrorCategory, message string) *MigrateError {
	return &MigrateError{Category: category, Severity: SeverityError, Message: message, Cause: err}
}

// ConfigError creates a configuration error (fatal by default: the run cannot
// proceed with a broken configuration).
func ConfigError(message string) *MigrateError {
	return &MigrateError{Category: CategoryConfig, Severity: SeverityFatal, Message: message}
}

// ValidationError creates a validation error.
func ValidationError(message string) *MigrateError {
	return &MigrateError{Category: CategoryValidation, Severity: SeverityError, Message: message}
}

// ProtectionLeakError reports sentinel tokens left behind after restoration.
// Never recovered silently: it indicates a sentinel collision or a
// restoration-ordering bug and the affected file must be reviewed.
func ProtectionLeakError(file string, tokens []string) *MigrateError {
	e := New(CategoryProtection, "sentinel tokens left after restoration")
	e.WithContext("file", file)
	e.WithContext("tokens", tokens)
	return e
}
