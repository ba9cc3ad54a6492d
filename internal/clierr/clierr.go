// Package clierr defines the coded errors tasktrack reports at its edges.
// The core returns them for validation and lookup failures; the CLI maps
// them to exit codes and the --json error envelope.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error codes.
const (
	TaskNotFound       = "TASK_NOT_FOUND"
	ParentNotFound     = "PARENT_NOT_FOUND"
	BoardNotFound      = "BOARD_NOT_FOUND"
	BoardAlreadyExists = "BOARD_ALREADY_EXISTS"
	EmptyText          = "EMPTY_TEXT"
	TextTooLong        = "TEXT_TOO_LONG"
	DuplicateText      = "DUPLICATE_TEXT"
	InvalidInput       = "INVALID_INPUT"
	InvalidStatus      = "INVALID_STATUS"
	InvalidFilter      = "INVALID_FILTER"
	InvalidViewMode    = "INVALID_VIEW_MODE"
	InvalidTaskID      = "INVALID_TASK_ID"
	BoundaryError      = "BOUNDARY_ERROR"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	StorageFailure     = "STORAGE_FAILURE"
	InternalError      = "INTERNAL_ERROR"
)

// Error is a failure with a machine-readable code. Cause, when set, is
// the underlying error and is reachable through errors.Is/As.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a persistence failure as STORAGE_FAILURE, keeping err as
// the cause.
func Storage(op string, err error) *Error {
	msg := err.Error()
	if op != "" {
		msg = op + ": " + msg
	}
	return &Error{Code: StorageFailure, Message: msg, Cause: err}
}

// WithDetails attaches details and returns e.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode is 2 for internal and storage failures, 1 otherwise.
func (e *Error) ExitCode() int {
	if e.Code == InternalError || e.Code == StorageFailure {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// SilentError carries an exit code for failures whose details were
// already written, as in batch operations.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
