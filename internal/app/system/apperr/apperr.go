// internal/app/system/apperr/apperr.go

// Package apperr defines the request-level error taxonomy and its mapping
// onto HTTP status codes. Store packages return sentinel errors; features
// wrap them into one of these kinds before they reach the JSON boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for status mapping.
type Kind int

const (
	// Validation covers missing or malformed input.
	Validation Kind = iota
	// Conflict covers duplicate unique keys (email, normalized name).
	Conflict
	// NotFound covers unknown ids and login identifiers that match nothing.
	NotFound
	// InvalidCredentials covers a matched record whose password differs.
	InvalidCredentials
	// Upstream covers database and asset-storage failures.
	Upstream
)

// Error is a classified error safe to serialize to clients.
// Msg is the client-facing message; the wrapped cause stays server-side.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error with a client-facing message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies an underlying error, keeping it for server-side logs.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Status returns the HTTP status code for an error. Unclassified errors map
// to 500 so nothing leaks through as a success.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case Validation, Conflict, InvalidCredentials:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error. Unclassified
// errors get a generic message; the cause is for logs only.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
