// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Kind classifies a service-level failure so handlers can map it to an HTTP
// status without inspecting message strings.
type Kind int

const (
	// KindValidation: the request is well-formed JSON but semantically invalid.
	KindValidation Kind = iota
	// KindNotFound: a referenced entity or price row does not exist.
	KindNotFound
	// KindConflict: the operation collides with existing state (duplicates).
	KindConflict
	// KindIntegrity: stored data is corrupt (invalid or negative price).
	KindIntegrity
)

// Error is the typed error services return. Transactions are rolled back
// before an Error ever reaches a handler.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// HTTPStatus maps the error kind to its response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		// Duplicates respond 400 like any other client error; the kind stays
		// distinct so callers can tell a collision from bad input.
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Detail: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Detail: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Detail: msg} }
func Integrity(msg string) *Error  { return &Error{Kind: KindIntegrity, Detail: msg} }

// Status resolves any error to (status, safe detail). Untyped errors become a
// generic 500 so internal messages never leak to clients.
func Status(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus(), e.Detail
	}
	return http.StatusInternalServerError, "Error interno del servidor"
}
