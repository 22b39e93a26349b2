package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnavailable  = "UNAVAILABLE"
)

func NewNotFoundError(resource, id string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s %q not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewTimeoutError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeTimeout,
		Message:    "Request timed out waiting for completion",
		HTTPStatus: http.StatusRequestTimeout,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewUnavailableError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUnavailable,
		Message:    "Quote storage is unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
