package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an application error. It decides the HTTP
// status and the log level the error is reported with.
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeExternal     ErrorType = "external"          // a backing service (Redis) failed
	ErrorTypeGeneration   ErrorType = "generation_failed" // the generator aborted on inconsistent input
)

// AppError carries a category and a client-safe message, optionally wrapping the cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(t ErrorType, message string, err error) error {
	return &AppError{Type: t, Message: message, Err: err}
}

func NotFound(message string) error {
	return newError(ErrorTypeNotFound, message, nil)
}

func NotFoundf(format string, args ...any) error {
	return newError(ErrorTypeNotFound, fmt.Sprintf(format, args...), nil)
}

func Validation(message string) error {
	return newError(ErrorTypeValidation, message, nil)
}

func Validationf(format string, args ...any) error {
	return newError(ErrorTypeValidation, fmt.Sprintf(format, args...), nil)
}

func WrapValidation(message string, err error) error {
	return newError(ErrorTypeValidation, message, err)
}

func WrapConflict(message string, err error) error {
	return newError(ErrorTypeConflict, message, err)
}

func Unauthorized(message string) error {
	return newError(ErrorTypeUnauthorized, message, nil)
}

func Forbidden(message string) error {
	return newError(ErrorTypeForbidden, message, nil)
}

func WrapInternal(message string, err error) error {
	return newError(ErrorTypeInternal, message, err)
}

func WrapExternal(message string, err error) error {
	return newError(ErrorTypeExternal, message, err)
}

func WrapGeneration(message string, err error) error {
	return newError(ErrorTypeGeneration, message, err)
}

// GetType returns the category of err. Errors that are not AppErrors are internal.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err is an AppError of category t.
func Is(err error, t ErrorType) bool {
	return err != nil && GetType(err) == t
}
