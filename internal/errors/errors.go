package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocument is returned when a value cannot be represented as a configuration document
	ErrInvalidDocument = errors.New("invalid configuration document")

	// ErrUnknownAttribute is returned when a declaration names an attribute the engine does not recognize
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DocumentValueError reports a value inside a document that falls outside
// the bool/integer/string/document variant.
type DocumentValueError struct {
	Path   string
	Reason string
}

func (e *DocumentValueError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid document value at '%s': %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid document: %s", e.Reason)
}

func (e *DocumentValueError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// NewDocumentValueError creates a new DocumentValueError
func NewDocumentValueError(path, reason string) *DocumentValueError {
	return &DocumentValueError{Path: path, Reason: reason}
}

// UnknownAttributeError represents an attribute that no builder accepts
type UnknownAttributeError struct {
	Attribute string
	Builder   string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("%s does not accept attribute '%s'", e.Builder, e.Attribute)
}

func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute || target == ErrInvalidInput
}

// NewUnknownAttributeError creates a new UnknownAttributeError
func NewUnknownAttributeError(builder, attribute string) *UnknownAttributeError {
	return &UnknownAttributeError{Builder: builder, Attribute: attribute}
}
