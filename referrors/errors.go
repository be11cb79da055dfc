package referrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrInvalidBaseURI indicates the base identifier could not be parsed as an absolute URI.
	ErrInvalidBaseURI = errors.New("invalid base URI")

	// ErrInvalidReference indicates a malformed $ref value or a failed join.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUnsupportedScheme indicates a reference target with a scheme other than http(s) or file.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrFetch indicates a network failure fetching a remote document.
	ErrFetch = errors.New("fetch error")

	// ErrFile indicates an open or parse failure reading a local document.
	ErrFile = errors.New("file error")

	// ErrPointerNotFound indicates a fragment that does not resolve inside its target document.
	ErrPointerNotFound = errors.New("pointer not found")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ReferenceError represents a failure to interpret a $ref before its target
// could be loaded: an unparseable base identifier, a malformed reference
// string, or a joined identifier whose scheme the engine does not support.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// BaseID is the base identifier in effect where the reference appeared
	BaseID string
	// IsInvalidBase is true when the base identifier itself could not be parsed
	IsInvalidBase bool
	// IsUnsupportedScheme is true when the joined identifier has an unsupported scheme
	IsUnsupportedScheme bool
	// Scheme is the offending scheme when IsUnsupportedScheme is set
	Scheme string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "invalid reference"
	if e.IsInvalidBase {
		msg = "invalid base URI"
	} else if e.IsUnsupportedScheme {
		msg = "unsupported scheme"
		if e.Scheme != "" {
			msg += " " + e.Scheme
		}
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.BaseID != "" {
		msg += " (base: " + e.BaseID + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and exactly one of ErrInvalidBaseURI,
// ErrUnsupportedScheme, or ErrInvalidReference depending on flags.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference:
		return true
	case ErrInvalidBaseURI:
		return e.IsInvalidBase
	case ErrUnsupportedScheme:
		return e.IsUnsupportedScheme
	case ErrInvalidReference:
		return !e.IsInvalidBase && !e.IsUnsupportedScheme
	}
	return false
}

// FetchError represents a network failure fetching a remote document.
// This includes transport errors, non-2xx responses, and bodies that
// cannot be parsed as a document tree.
type FetchError struct {
	// URL is the document URL that failed to fetch
	URL string
	// StatusCode is the HTTP status code, if a response was received (0 otherwise)
	StatusCode int
	// Message describes the fetch failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.URL != "" {
		msg += ": " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// FileError represents an open or parse failure reading a local document.
type FileError struct {
	// Path is the filesystem path that failed to load
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FileError) Error() string {
	msg := "file error"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FileError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FileError) Is(target error) bool {
	return target == ErrFile
}

// PointerError represents a $ref fragment that does not resolve to a value
// inside its (successfully loaded) target document.
type PointerError struct {
	// Ref is the original reference string
	Ref string
	// Pointer is the JSON Pointer fragment that failed to resolve
	Pointer string
	// BaseID is the base identifier in effect where the reference appeared
	BaseID string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PointerError) Error() string {
	msg := "pointer not found"
	if e.Ref != "" {
		msg += ": ref " + e.Ref
	}
	if e.Pointer != "" {
		msg += ": pointer " + e.Pointer + " can not be found in the target document"
	}
	if e.BaseID != "" {
		msg += " (base: " + e.BaseID + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PointerError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PointerError) Is(target error) bool {
	return target == ErrPointerNotFound
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when resolution exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "walk_depth", "cached_documents", "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
