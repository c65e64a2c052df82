package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an application error. Each type maps to one
// HTTP status in the response package. ErrorTypeUnprocessable marks
// well-formed input the generator could not turn into a system.
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeUnprocessable    ErrorType = "unprocessable"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	ErrorTypeExternal         ErrorType = "external"
	ErrorTypeInternal         ErrorType = "internal"
)

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

func NotFoundf(format string, args ...any) error {
	return newError(ErrorTypeNotFound, fmt.Sprintf(format, args...), nil)
}

func WrapNotFound(message string, err error) error {
	return newError(ErrorTypeNotFound, message, err)
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

func Unauthorized(message string) error {
	return newError(ErrorTypeUnauthorized, message, nil)
}

func Forbidden(message string) error {
	return newError(ErrorTypeForbidden, message, nil)
}

func MethodNotAllowed(method string) error {
	return newError(ErrorTypeMethodNotAllowed, fmt.Sprintf("method %s not allowed", method), nil)
}

func WrapUnprocessable(message string, err error) error {
	return newError(ErrorTypeUnprocessable, message, err)
}

func TooManyRequests(message string) error {
	return newError(ErrorTypeRateLimited, message, nil)
}

func External(message string) error {
	return newError(ErrorTypeExternal, message, nil)
}

func WrapExternal(message string, err error) error {
	return newError(ErrorTypeExternal, message, err)
}

func WrapInternal(message string, err error) error {
	return newError(ErrorTypeInternal, message, err)
}

// GetType returns the type of the outermost AppError in err's chain, or
// ErrorTypeInternal when there is none.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// PublicMessage is the text clients see for err. Internal and external
// failures only expose their top-level message, never the wrapped cause.
func PublicMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "internal server error"
	}
	switch appErr.Type {
	case ErrorTypeInternal, ErrorTypeExternal:
		return appErr.Message
	default:
		return appErr.Error()
	}
}
