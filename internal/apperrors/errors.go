// Package apperrors is the error taxonomy surfaced at the HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for status mapping. Kinds are comparable with errors.Is.
type Kind struct {
	name   string
	status int
}

func (k *Kind) Error() string { return k.name }

// Status is the HTTP status code the kind maps to.
func (k *Kind) Status() int { return k.status }

var (
	AuthRequired       = &Kind{"auth required", http.StatusUnauthorized}
	Validation         = &Kind{"validation error", http.StatusBadRequest}
	NotFound           = &Kind{"not found", http.StatusNotFound}
	Forbidden          = &Kind{"forbidden", http.StatusForbidden}
	PersistenceFailure = &Kind{"persistence failure", http.StatusInternalServerError}
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an application error carrying its kind, a client-safe message and,
// for persistence failures, the underlying cause (never shown to clients).
type Error struct {
	Kind    *Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.name, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind.name, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func newError(kind *Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Unauthenticated(msg string) *Error { return newError(AuthRequired, msg) }
func NotFoundf(format string, args ...any) *Error {
	return newError(NotFound, fmt.Sprintf(format, args...))
}
func Forbiddenf(format string, args ...any) *Error {
	return newError(Forbidden, fmt.Sprintf(format, args...))
}

// Invalid builds a validation error. Fields may be empty for whole-payload problems.
func Invalid(msg string, fields ...FieldError) *Error {
	e := newError(Validation, msg)
	e.Fields = fields
	return e
}

// Persistence wraps a storage error. The op names the failed operation for logs.
func Persistence(op string, err error) *Error {
	return &Error{Kind: PersistenceFailure, Message: op, cause: err}
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, PersistenceFailure for unknown errors.
func KindOf(err error) *Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return PersistenceFailure
}
