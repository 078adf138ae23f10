package common

import "errors"

// Code is a machine-readable error kind surfaced to API clients.
type Code string

const (
	CodeNotFound             Code = "not_found"
	CodeValidation           Code = "validation_failed"
	CodeForbidden            Code = "access_denied"
	CodeUnauthorized         Code = "unauthorized"
	CodeConflict             Code = "conflict"
	CodeTransitionNotAllowed Code = "transition_not_allowed"
	CodeArchiveOpen          Code = "archive_open_not_allowed"
	CodeArchived             Code = "archived"
	CodeRateLimited          Code = "rate_limited"
	CodeInternal             Code = "internal"
)

// Error carries a Code, a client-facing message and, for validation
// failures, a field -> message map with every violation collected.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// errors that did not originate in this service.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

// FieldsOf returns the validation field map, if any.
func FieldsOf(err error) map[string]string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Fields
	}
	return nil
}
