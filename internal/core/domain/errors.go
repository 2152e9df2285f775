package domain

import (
	"fmt"
	"strings"
)

// FieldError describes a single field-level constraint violation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is the structured list of field violations returned for
// malformed input, duplicate emails, and other constraint failures. Callers
// render it as a 400-class response; it never indicates a server fault.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Field+": "+fe.Reason)
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a single-field ValidationErrors value.
func NewValidationError(field, format string, args ...any) ValidationErrors {
	return ValidationErrors{{Field: field, Reason: fmt.Sprintf(format, args...)}}
}
