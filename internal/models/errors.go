package models

import (
	"errors"
	"fmt"
)

// Error codes carried by AppError.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	// Resource and Key identify the entity a NOT_FOUND or CONFLICT error refers to.
	Resource string
	Key      interface{}
	Err      error
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

// NewNotFoundError reports that no resource matched the given key (an ID or a slug).
func NewNotFoundError(resource string, key interface{}) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s with key %v not found", resource, key),
		Resource: resource,
		Key:      key,
	}
}

// NewConflictError reports a write that lost a uniqueness race and could not be reconciled.
func NewConflictError(resource string, key interface{}, err error) *AppError {
	return &AppError{
		Code:     CodeConflict,
		Message:  fmt.Sprintf("%s with key %v conflicts with a concurrent write", resource, key),
		Resource: resource,
		Key:      key,
		Err:      err,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err wraps an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool   { return HasCode(err, CodeNotFound) }
func IsConflict(err error) bool   { return HasCode(err, CodeConflict) }
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }
