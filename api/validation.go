// Package api provides the HTTP surface for building field and tokenizer
// configuration documents.
package api

import (
	"encoding/json"
	stderrors "errors"
	"sort"
	"strings"

	"github.com/mrbreo/paradedb/config"
	"github.com/mrbreo/paradedb/internal/errors"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateName checks the structural name every builder call requires.
// Only presence is checked; the name itself is passed through unchanged.
func ValidateName(field string, name *string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == nil {
		result.AddError(field, "Name is required")
		return result
	}

	if strings.TrimSpace(*name) == "" {
		result.AddError(field, "Name cannot be empty or whitespace-only")
	}

	return result
}

// unknownAttributes returns the top-level keys of body that are not in
// accepted, sorted. A body that is not a JSON object yields nothing.
func unknownAttributes(body []byte, accepted map[string]bool) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	var unknown []string
	for key := range raw {
		if !accepted[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// attributeName drops the embedded options struct from a decoder field path,
// so "TokenizerOptions.min_gram" is reported as "min_gram".
func attributeName(field string) string {
	for _, prefix := range []string{"TokenizerOptions.", "FieldOptions."} {
		if strings.HasPrefix(field, prefix) {
			return strings.TrimPrefix(field, prefix)
		}
	}
	return field
}

// ValidateDecodeError turns a binding failure into attribute-level details.
// body is the raw request body and accepted the attributes the builder
// takes. It returns nil for errors that are not about a specific attribute,
// such as malformed JSON.
func ValidateDecodeError(builder string, accepted map[string]bool, body []byte, err error) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if unknown := unknownAttributes(body, accepted); len(unknown) > 0 {
		for _, attr := range unknown {
			result.AddError(attr, errors.NewUnknownAttributeError(builder, attr).Error())
		}
		return result
	}

	var typeErr *json.UnmarshalTypeError
	var docErr *errors.DocumentValueError
	switch {
	case stderrors.As(err, &docErr):
		field := config.KeyTokenizer
		if docErr.Path != "" {
			field += "." + docErr.Path
		}
		result.AddError(field, docErr.Reason)
	case stderrors.As(err, &typeErr):
		field := attributeName(typeErr.Field)
		if field == "" {
			field = "request_body"
		}
		result.AddError(field, "Expected "+typeErr.Type.String()+", got JSON "+typeErr.Value)
	default:
		return nil
	}

	return result
}
