// Package errors provides structured error types for the dependents scanner.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the scan pipeline and the CLI
//   - Machine-readable codes recorded on per-file scan failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure taxonomy of a repository scan:
//   - IO_ERROR: workspace allocation or cleanup
//   - NETWORK_ERROR: git fetch or HTTP transport failures
//   - HTTP_ERROR: non-success content retrieval (see [HTTPError])
//   - PARSE_ERROR: malformed manifests or version strings
//
// An unresolvable branch is not an error: listings come back empty.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "invalid version %q", raw)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Record the failure and move on
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeIO       Code = "IO_ERROR"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeHTTP        Code = "HTTP_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Content errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code.
// It checks the outermost coded error in the chain, whether that is an
// *Error or a type with a Code method such as *HTTPError.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if nothing in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case interface{ Code() Code }:
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPError reports a non-success response from a content or API endpoint.
type HTTPError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Code returns the error code for this error type. Rate limiting responses
// map to RATE_LIMITED, everything else to HTTP_ERROR.
func (e *HTTPError) Code() Code {
	if e.StatusCode == http.StatusTooManyRequests {
		return ErrCodeRateLimited
	}
	return ErrCodeHTTP
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// *HTTPError.
func StatusCode(err error) int {
	var e *HTTPError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
