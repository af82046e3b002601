package intake

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrNoForm       = errors.New("job has no application form")
	ErrInvalidInput = errors.New("invalid submission")
)

// FieldError is a validation failure for one form field.
type FieldError struct {
	FieldID string `json:"fieldId"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.FieldID, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details maps field ids to messages.
func (e *ValidationError) Details() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.FieldID] = f.Message
	}
	return out
}
