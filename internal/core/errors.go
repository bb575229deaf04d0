// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrDuplicateKey       = errors.New("duplicate key")
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_ERROR"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is an error that knows how it is rendered at the HTTP boundary.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
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

func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
		Err:        err,
	}
}

func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, message, http.StatusNotFound, ErrNotFound)
}

func BadRequestError(message string) *AppError {
	return NewAppError(
		CodeBadRequest,
		message,
		http.StatusBadRequest,
		ErrInvalidInput,
	)
}

func ValidationError(message string) *AppError {
	return NewAppError(
		CodeValidation,
		message,
		http.StatusBadRequest,
		ErrInvalidInput,
	)
}

// PreconditionError renders as 400: the state conflict is reported to the
// client as a bad request, not as 409/412.
func PreconditionError(message string) *AppError {
	return NewAppError(
		CodePreconditionFailed,
		message,
		http.StatusBadRequest,
		ErrPreconditionFailed,
	)
}

func InternalError(err error) *AppError {
	return NewAppError(
		CodeInternal,
		"internal server error",
		http.StatusInternalServerError,
		err,
	)
}
