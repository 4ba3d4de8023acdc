// Package errors provides structured error types for jsongraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the editor and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes map onto the failure kinds of the mutation pipeline:
//   - MALFORMED_DOCUMENT: the canonical document (or a replacement) is not JSON
//   - UNRESOLVABLE_ACCESSOR: an accessor decodes to nothing or crosses a primitive
//   - INVALID_*: user input that cannot be turned into a JSON value
//   - OBSERVER_FAILED: a change was committed but an observer rejected it
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnresolvableAccessor, "accessor %q resolves to the root", acc)
//	if errors.Is(err, errors.ErrCodeUnresolvableAccessor) {
//	    // keep the editor open
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, parseErr, "parse current document")
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidAccessor Code = "INVALID_ACCESSOR"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Document errors
	ErrCodeMalformedDocument    Code = "MALFORMED_DOCUMENT"
	ErrCodeUnresolvableAccessor Code = "UNRESOLVABLE_ACCESSOR"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Collaborator errors
	ErrCodeObserver Code = "OBSERVER_FAILED"
	ErrCodeStorage  Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (plus the cause, which for parse
// failures is the parser's own wording) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
