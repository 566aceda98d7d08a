// Package errors provides structured error types for moverboard.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Taxonomy
//
// Three kinds of failure flow through the rendering pipeline:
//   - Input errors: missing or invalid request fields. These are collected
//     exhaustively into an [InputError] and surfaced before any layout runs.
//   - Asset errors: a logo or background image could not be resolved. These
//     are always recoverable; the page renders a fallback instead.
//   - Layout errors: an internal invariant was violated (for example a page
//     with zero rows). These are programming errors and abort the run.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeAsset, origErr, "fetch %s", ref)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidCapacity Code = "INVALID_CAPACITY"
	ErrCodeInvalidRef      Code = "INVALID_REF"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeRenderNotFound Code = "RENDER_NOT_FOUND"
	ErrCodePageNotFound   Code = "PAGE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Rendering errors
	ErrCodeAsset  Code = "ASSET_ERROR"
	ErrCodeLayout Code = "LAYOUT_ERROR"

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

// Layout creates a layout invariant error.
func Layout(format string, args ...any) *Error {
	return New(ErrCodeLayout, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *InputError with a matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return ErrCodeInvalidInput
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return strings.Join(ie.Messages, "; ")
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// InputError lists every validation failure found in a request.
// The validator never stops at the first problem, so Messages is complete.
type InputError struct {
	Messages []string
}

// NewInputError returns nil when msgs is empty.
func NewInputError(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &InputError{Messages: append([]string(nil), msgs...)}
}

// Error implements the error interface.
func (e *InputError) Error() string {
	switch len(e.Messages) {
	case 0:
		return string(ErrCodeInvalidInput)
	case 1:
		return fmt.Sprintf("%s: %s", ErrCodeInvalidInput, e.Messages[0])
	}
	return fmt.Sprintf("%s: %d problems: %s", ErrCodeInvalidInput, len(e.Messages), strings.Join(e.Messages, "; "))
}

// AsInput extracts the InputError from err, if any.
func AsInput(err error) (*InputError, bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
