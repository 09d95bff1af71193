package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeOwnershipViolation Code = "OWNERSHIP_VIOLATION"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeValidation         Code = "VALIDATION"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus maps a code to its response status. Lookup failures are reported as
// 400 rather than 404 to stay compatible with existing clients.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeOwnershipViolation, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound           = &Error{Code: CodeNotFound}
	ErrOwnershipViolation = &Error{Code: CodeOwnershipViolation}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized}
	ErrValidation         = &Error{Code: CodeValidation}
	ErrInternal           = &Error{Code: CodeInternal}
)

// Error is a domain error carrying a code and a user-facing message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing (or foreign-owned) resource.
func NotFound(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

// OwnershipViolation reports a resource that exists but belongs to another user.
func OwnershipViolation(format string, args ...any) *Error {
	return newf(CodeOwnershipViolation, format, args...)
}

// Unauthorized reports a failed authentication or a read of another user's resource.
func Unauthorized(format string, args ...any) *Error {
	return newf(CodeUnauthorized, format, args...)
}

// Validation reports a malformed request.
func Validation(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

// Invalid is Validation with the underlying decoding or validator failure attached.
func Invalid(message string, cause error) *Error {
	return &Error{Code: CodeValidation, Message: message, cause: cause}
}

// Internal wraps an unexpected failure (storage, database).
func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, cause: cause}
}

// Status returns the HTTP status for any error; non-domain errors are internal.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Message returns the text safe to show to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
