// Package errors provides structured error types for spritetower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - A split between per-document failures (skipped) and fatal failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Per-document codes (the document is skipped, generation continues):
//   - PARSE_ERROR: the buffer is not well-formed markup
//   - INVALID_ROOT: the root element is not <svg>
//   - INVALID_VIEWBOX: the view box is missing, non-numeric or non-positive
//
// Fatal codes abort generation:
//   - DUPLICATE_NAME (when duplicates are configured to fail)
//   - NAME_COLLISION: two icons normalize to the same identifier
//   - PACKING_INVARIANT_VIOLATION: the packer produced an invalid placement
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidViewBox, "view box %q has no width", vb)
//	if errors.IsSkip(err) {
//	    // record a diagnostic, continue with the next file
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "parse %s", filename)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-document errors
	ErrCodeParse          Code = "PARSE_ERROR"
	ErrCodeInvalidRoot    Code = "INVALID_ROOT"
	ErrCodeInvalidViewBox Code = "INVALID_VIEWBOX"

	// Generation errors
	ErrCodeDuplicateName      Code = "DUPLICATE_NAME"
	ErrCodeNameCollision      Code = "NAME_COLLISION"
	ErrCodePackingInvariant   Code = "PACKING_INVARIANT_VIOLATION"
	ErrCodeInvalidPacker      Code = "INVALID_PACKER"
	ErrCodeInvalidUnit        Code = "INVALID_UNIT"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeConfigurationUnset Code = "CONFIGURATION_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// skipCodes are the codes that exclude a single document without aborting the batch.
var skipCodes = map[Code]bool{
	ErrCodeParse:          true,
	ErrCodeInvalidRoot:    true,
	ErrCodeInvalidViewBox: true,
}

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
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsSkip reports whether err describes a single unusable document.
// Such errors become diagnostics; everything else is fatal.
func IsSkip(err error) bool {
	return skipCodes[GetCode(err)]
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
