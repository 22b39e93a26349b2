package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a rejected value-object construction or catalog lookup.
// Business rule violations are never reported this way; see the validation results.
type DomainError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeOutOfRange       = "OUT_OF_RANGE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDuplicateCountry = "DUPLICATE_COUNTRY"
	ErrCodeCurrencyMismatch = "CURRENCY_MISMATCH"
	ErrCodeVATRateMismatch  = "VAT_RATE_MISMATCH"
)

func NewInvalidArgumentError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidArgument,
		Field:   field,
		Message: message,
	}
}

func NewOutOfRangeError(field string, value any) *DomainError {
	return &DomainError{
		Code:    ErrCodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("value %v is out of range", value),
	}
}

func NewNotFoundError(kind, key string) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, key),
	}
}

func NewDuplicateCountryError(country CountryCode) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicateCountry,
		Field:   "rules",
		Message: fmt.Sprintf("country %s appears more than once", country),
	}
}

func NewCurrencyMismatchError(a, b string) *DomainError {
	return &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Message: fmt.Sprintf("cannot combine %s with %s", a, b),
	}
}

func NewVATRateMismatchError(a, b string) *DomainError {
	return &DomainError{
		Code:    ErrCodeVATRateMismatch,
		Message: fmt.Sprintf("cannot combine VAT rate %s with %s", a, b),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// FieldOf returns the offending field of a DomainError, or "" for other errors.
func FieldOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Field
	}
	return ""
}
