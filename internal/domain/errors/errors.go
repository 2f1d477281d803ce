package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrCapacity     = errors.New("team at capacity")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// Error codes
const (
	CodeValidation    = "ERR_VALIDATION"
	CodeConflict      = "ERR_CONFLICT"
	CodeCapacity      = "ERR_CAPACITY"
	CodeNotFound      = "ERR_NOT_FOUND"
	CodeUnauthorized  = "ERR_UNAUTHORIZED"
	CodeForbidden     = "ERR_FORBIDDEN"
	CodeInternalError = "ERR_INTERNAL"
)

// NonFieldErrorsKey holds errors that are not tied to a single input field.
const NonFieldErrorsKey = "non_field_errors"

// AppError represents application error with HTTP status
type AppError struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	if e.Status >= http.StatusInternalServerError && e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation rejects a single input field.
func Validation(field, message string) *AppError {
	return ValidationFields(map[string][]string{field: {message}})
}

// ValidationFields rejects one or more input fields at once.
func ValidationFields(fields map[string][]string) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeValidation, firstMessage(fields), ErrValidation)
	e.Fields = fields
	return e
}

// Conflict reports a violated uniqueness rule.
func Conflict(message string) *AppError {
	e := NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
	e.Fields = map[string][]string{NonFieldErrorsKey: {message}}
	return e
}

// Capacity reports a team whose roster is full.
func Capacity(maxMembers int) *AppError {
	msg := fmt.Sprintf("Team is at capacity (%d). Cannot add another member.", maxMembers)
	e := NewAppError(http.StatusBadRequest, CodeCapacity, msg, ErrCapacity)
	e.Fields = map[string][]string{"team": {msg}}
	return e
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Kind names the rejection class of err for metrics and logs.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrCapacity):
		return "capacity"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}

func firstMessage(fields map[string][]string) string {
	for _, msgs := range fields {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ErrValidation.Error()
}
