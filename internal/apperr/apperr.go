package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies request failures for the HTTP layer.
type Kind int

const (
	KindUnauthenticated Kind = iota
	KindForbidden
	KindNotFound
	KindValidation
	KindInternal
)

// Error carries a failure kind alongside a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages for KindValidation.
	Fields map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthenticated reports a missing or invalid principal.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden reports a principal that lacks rights over the target or a
// business-rule violation surfaced as 403 (inactive card, dependent
// transactions).
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Forbiddenf formats a Forbidden error.
func Forbiddenf(format string, args ...any) *Error {
	return Forbidden(fmt.Sprintf(format, args...))
}

// NotFound reports an identifier that resolves to no live record.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Validation reports malformed input with field-scoped messages.
func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "the given data was invalid", Fields: fields}
}

// FieldError builds a single-field Validation error.
func FieldError(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}

// KindOf extracts the Kind of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldsOf returns the field messages of a validation error, nil otherwise.
func FieldsOf(err error) map[string][]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}
