package apperr

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidArgument = "invalid_argument"
	CodeRuntime         = "runtime"
	CodeNotFound        = "not_found"
	CodeInternal        = "internal"
)

// Error represents a structured application error.
type Error struct {
	Code    string
	Status  int
	Message string
	Cause   error
}

// New creates a new Error.
func New(code string, status int, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Status:  status,
		Message: message,
		Cause:   cause,
	}
}

// InvalidArgument reports a caller mistake, such as a malformed value.
func InvalidArgument(message string, cause error) *Error {
	return New(CodeInvalidArgument, 400, message, cause)
}

// Runtime reports an operation that cannot proceed in the current state.
func Runtime(message string, cause error) *Error {
	return New(CodeRuntime, 500, message, cause)
}

// NotFound reports a missing record.
func NotFound(message string, cause error) *Error {
	return New(CodeNotFound, 404, message, cause)
}

// Internal reports an unexpected failure.
func Internal(message string, cause error) *Error {
	return New(CodeInternal, 500, message, cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap returns the root cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// As extracts an *Error if present.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
