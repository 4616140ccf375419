package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound    = NewNotFoundError("resource", "")
	ErrEmptyFields = NewValidationError("", "Name and email cannot be empty")
)

// ValidationError represents a client input problem
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
// The message is returned verbatim since it is sent to the client as-is.
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// Is reports whether target is any NotFoundError, so errors.Is(err, ErrNotFound) works
// regardless of resource and message.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// DatabaseError represents any failure coming from the storage layer
type DatabaseError struct {
	Message string
	Err     error
}

// NewDatabaseError creates a new database error. The message defaults to the
// wrapped error's text.
func NewDatabaseError(err error) *DatabaseError {
	msg := "database error"
	if err != nil {
		msg = err.Error()
	}
	return &DatabaseError{
		Message: msg,
		Err:     err,
	}
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *DatabaseError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser interface for errors that can provide an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// HTTPStatus returns the status code carried by err, or 500 for errors outside the taxonomy.
func HTTPStatus(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsKnown reports whether err belongs to the application error taxonomy.
func IsKnown(err error) bool {
	var s HTTPStatuser
	return errors.As(err, &s)
}
