package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/rental-pricing-engine/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and metrics
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines the error category for logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeNotFound:
			return CategoryClientError
		case ErrCodeTimeout, ErrCodeUnavailable:
			return CategoryTransient
		case ErrCodeInternal:
			return CategoryInfrastructure
		}
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) || errors.Is(err, ErrQuoteNotFound) {
		return CategoryClientError
	}

	return CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case domain.IsErrorCode(err, domain.ErrCodeInvalidArgument),
		domain.IsErrorCode(err, domain.ErrCodeOutOfRange):
		return http.StatusBadRequest
	case domain.IsErrorCode(err, domain.ErrCodeDuplicateCountry),
		domain.IsErrorCode(err, domain.ErrCodeCurrencyMismatch),
		domain.IsErrorCode(err, domain.ErrCodeVATRateMismatch):
		return http.StatusUnprocessableEntity
	case domain.IsErrorCode(err, domain.ErrCodeNotFound),
		errors.Is(err, ErrQuoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	if errors.Is(err, ErrQuoteNotFound) {
		return ErrCodeNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}

	return ErrCodeInternal
}

// ErrorField names the request field an input error refers to, if any.
func ErrorField(err error) string {
	return domain.FieldOf(err)
}
