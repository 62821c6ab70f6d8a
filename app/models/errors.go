package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports client input that failed validation. Fields lists
// every violated field so callers can report them all at once.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with an explicit message.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// MissingFields builds the aggregated required-field error, e.g.
// "Missing required fields: title, content".
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
	}
}

// missingFromStruct runs the struct validator and collects the names of
// fields that failed their "required" tag, in declaration order.
func missingFromStruct(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var missing []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			if fe.Tag() == "required" {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
		}
	}
	return missing
}
