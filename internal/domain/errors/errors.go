// Package errors provides the error taxonomy for the domain layer. Engine
// operations fail with exactly one of these kinds; handlers map them onto
// HTTP responses.
package errors

import (
	"errors"
	"fmt"
)

// Standard error categories
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request is not authorized
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrPersistence indicates the storage collaborator failed. Treated as
	// opaque and non-retriable at this layer.
	ErrPersistence = errors.New("persistence failure")
)

// DomainError carries a stable code and optional details alongside the
// underlying error kind.
type DomainError struct {
	Err     error
	Code    string
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *DomainError) Is(target error) bool {
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(err error, code, message string) *DomainError {
	return &DomainError{Err: err, Code: code, Message: message}
}

// WithDetails attaches detail context to the error.
func (e *DomainError) WithDetails(details map[string]interface{}) *DomainError {
	e.Details = details
	return e
}

// PersistenceError wraps a storage failure.
func PersistenceError(op string, err error) *DomainError {
	return &DomainError{
		Err:     ErrPersistence,
		Code:    "PERSISTENCE_ERROR",
		Message: fmt.Sprintf("%s: %v", op, err),
	}
}
