// Package referrors provides structured error types for the jsonref library.
//
// Import path: github.com/erraggy/jsonref/referrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [ReferenceError]: invalid base identifiers, malformed $ref values, unsupported schemes
//   - [FetchError]: network/HTTP failures fetching a remote document
//   - [FileError]: open/parse failures reading a local document
//   - [PointerError]: a $ref fragment that does not resolve inside its target document
//   - [ResourceLimitError]: resource exhaustion (depth, size, count limits)
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error category has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrInvalidBaseURI]: matches [ReferenceError] with IsInvalidBase=true
//   - [ErrInvalidReference]: matches [ReferenceError] for a malformed $ref value
//   - [ErrUnsupportedScheme]: matches [ReferenceError] with IsUnsupportedScheme=true
//   - [ErrFetch]: matches any [FetchError]
//   - [ErrFile]: matches any [FileError]
//   - [ErrPointerNotFound]: matches any [PointerError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	_, err := r.ResolveFile("schema.json")
//	if errors.Is(err, referrors.ErrPointerNotFound) {
//	    // Handle missing fragment
//	}
//
// Extract error details with errors.As():
//
//	var ptrErr *referrors.PointerError
//	if errors.As(err, &ptrErr) {
//	    fmt.Printf("pointer %s missing in %s\n", ptrErr.Pointer, ptrErr.BaseID)
//	}
package referrors
