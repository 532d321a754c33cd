package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed error with HTTP awareness.
// Only Message is ever shown to API callers; Err is kept for server-side logging.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Failure kinds surfaced by the API.
var (
	ErrMissingParameter = New("MISSING_PARAMETER", http.StatusBadRequest, "missing required parameter")
	ErrInvalidParameter = New("INVALID_PARAMETER", http.StatusBadRequest, "invalid parameter")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// ErrCacheMiss signals an absent cache entry.
var ErrCacheMiss = errors.New("cache miss")

// MissingParameter builds a caller-correctable 400 error naming the absent field.
func MissingParameter(message string) *Error {
	return Clone(ErrMissingParameter, message)
}

// InvalidParameter builds a 400 error for a parameter that is present but not accepted.
func InvalidParameter(err error, message string) *Error {
	return Wrap(err, ErrInvalidParameter.Code, ErrInvalidParameter.Status, message)
}

// Unhandled wraps any failure into a 500 error carrying a generic caller-facing message.
func Unhandled(err error, message string) *Error {
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, message)
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
