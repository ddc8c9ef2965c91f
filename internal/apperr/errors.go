package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Fields  []FieldError
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

func NewValidationFields(msg string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

type Kind int

const (
	Internal Kind = iota
	InvalidIdentifier
	NotFound
	Unauthorized
	Forbidden
	Conflict
)

func (k Kind) String() string {
	switch k {
	case InvalidIdentifier:
		return "invalid identifier"
	case NotFound:
		return "not found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

func (k Kind) Status() int {
	switch k {
	case InvalidIdentifier:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is shown to the caller, Err is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func NewNotFound(format string, args ...any) *Error {
	return New(NotFound, fmt.Sprintf(format, args...))
}

func NewInvalidIdentifier(param, value string) *Error {
	return New(InvalidIdentifier, fmt.Sprintf("invalid %s: %q is not a numeric identifier", param, value))
}

func NewUnauthorized(msg string) *Error {
	return New(Unauthorized, msg)
}

func NewForbidden(msg string) *Error {
	return New(Forbidden, msg)
}

func NewConflict(format string, args ...any) *Error {
	return New(Conflict, fmt.Sprintf(format, args...))
}
