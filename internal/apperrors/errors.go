// Package apperrors defines the error kinds that handlers report to API clients.
//
// Every failure that reaches a handler is either one of these kinds or an unexpected
// store/system error, which is reported as an internal server error.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAuthentication is returned when credentials do not match an active user (401).
	ErrAuthentication = errors.New("authentication failed")
	// ErrForbidden is returned when the caller is unauthenticated or lacks the required role (403).
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries field-level messages for a rejected payload (422).
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

// Validation creates a validation error with a general message and no field details.
func Validation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// FieldError creates a validation error with a single field message.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed",
		Fields:  map[string][]string{field: {message}},
	}
}

// Add appends a message for the given field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasFields reports whether at least one field message was collected.
func (e *ValidationError) HasFields() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

// NotFoundError reports an unknown entity (404).
type NotFoundError struct {
	Entity string
}

// NotFound creates a not found error for the named entity.
func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AsValidation returns the wrapped ValidationError, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
