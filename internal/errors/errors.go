package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ModuleNotFound indicates a referenced module is not in the registry
	ModuleNotFound ErrorCode = "MODULE_NOT_FOUND"
	// ConstructionError indicates the graph could not be built from the scan
	ConstructionError ErrorCode = "CONSTRUCTION_ERROR"
	// InvalidFilterPattern indicates a filter expression failed to compile
	InvalidFilterPattern ErrorCode = "INVALID_FILTER_PATTERN"
	// ConfigurationError indicates invalid or contradictory configuration
	ConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ParseError indicates a source file could not be parsed
	ParseError ErrorCode = "PARSE_ERROR"
	// ManifestError indicates the project manifest could not be read
	ManifestError ErrorCode = "MANIFEST_ERROR"
	// ExportError indicates a report could not be written
	ExportError ErrorCode = "EXPORT_ERROR"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// DepError represents an analysis error with a stable code and message
type DepError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a new DepError
func New(code ErrorCode, message string) *DepError {
	return &DepError{Code: code, Message: message}
}

// Wrap creates a new DepError with an underlying cause
func Wrap(code ErrorCode, message string, cause error) *DepError {
	return &DepError{Code: code, Message: message, cause: cause}
}

// NotFound creates a ModuleNotFound error for the given module path
func NotFound(path string) *DepError {
	return &DepError{
		Code:    ModuleNotFound,
		Message: fmt.Sprintf("Module '%s' not found", path),
	}
}

// Error implements the error interface
func (e *DepError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DepError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *DepError) WithDetails(details interface{}) *DepError {
	e.Details = details
	return e
}

// CodeOf returns the error code carried by err, or InternalError for
// plain errors.
func CodeOf(err error) ErrorCode {
	if de, ok := err.(*DepError); ok {
		return de.Code
	}
	return InternalError
}
