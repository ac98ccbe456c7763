// Package domainerrors defines the error codes services return and handlers
// translate to HTTP. Every failure a request can end in maps to exactly one
// code; anything unclassified is internal.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	// CodeBadRequest marks a request body that could not be decoded.
	CodeBadRequest Code = "bad_request"
	// CodeInvalidFields marks a decoded request with missing or sentinel
	// field values.
	CodeInvalidFields Code = "invalid_fields"
	// CodeForbidden marks a device that is not on the allow-list.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks a lookup that found no record.
	CodeNotFound Code = "not_found"
	// CodeInternal is the catch-all for storage and other infrastructure
	// failures. Details never reach the caller.
	CodeInternal Code = "internal_error"
)

// Error carries a code and a human-readable message. The message of an
// internal error is for logs only; httputil strips it from responses.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds a domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a domain error that preserves the underlying cause for
// errors.Is/errors.As while presenting only the given message.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidFields:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
