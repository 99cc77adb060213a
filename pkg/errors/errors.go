// Package errors provides structured error types for menulink.
//
// Every failure surfaced to an operator carries a machine-readable [Code] and
// a human-readable message, so the CLI, the terminal UI and the HTTP API can
// all decide how to present it without string matching.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures (missing table label, missing target)
//   - NOT_FOUND: Unknown record, category or item
//   - FETCH_FAILED: The QR raster could not be obtained; the export is aborted
//   - UNSUPPORTED: No drawing surface or PNG encoder is available
//   - CLIPBOARD_FAILED: Copying a link to the clipboard failed
//   - CANCELED: The caller abandoned the operation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "table label is required")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // show the message, leave the registry alone
//	}
//
//	err := errors.Wrap(errors.ErrCodeFetchFailed, origErr, "fetch QR raster for %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScope  Code = "INVALID_SCOPE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network and fetch errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeFetchFailed Code = "FETCH_FAILED"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Export side-effect errors
	ErrCodeClipboard Code = "CLIPBOARD_FAILED"
	ErrCodeOpen      Code = "OPEN_FAILED"
	ErrCodeWrite     Code = "WRITE_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeCanceled    Code = "CANCELED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// The outermost *Error wins; a bare *RateLimitedError reports RATE_LIMITED.
// Returns empty string for any other error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl.Code()
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

// IsValidation reports whether err is one of the input validation codes.
// Validation failures are recoverable: callers surface them and move on.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidScope, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return true
	}
	return false
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

// AsRateLimited finds a *RateLimitedError anywhere in err's chain, including
// beneath an *Error that classified it differently.
func AsRateLimited(err error) (*RateLimitedError, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
