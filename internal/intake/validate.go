package intake

import (
	"fmt"
	"strconv"

	"ats-backend/internal/forms"
)

const (
	msgRequired     = "This field is required"
	msgSelectOption = "Please select at least one option"
)

// Validate checks answers against the form and returns one error per failing
// field, in form order. Range bounds apply only to number fields whose value
// parses; empty and non-numeric values are not range-checked.
func Validate(form forms.CustomForm, answers forms.Answers) []FieldError {
	var out []FieldError
	for _, field := range form.Fields() {
		if msg := checkField(field, answers); msg != "" {
			out = append(out, FieldError{FieldID: field.ID, Message: msg})
		}
	}
	return out
}

func checkField(field forms.Field, answers forms.Answers) string {
	a, present := answers.Get(field.ID)
	if field.Required {
		switch {
		case !present:
			return msgRequired
		case a.Kind == forms.KindList && len(a.List) == 0:
			return msgSelectOption
		case a.Kind != forms.KindList && a.Text == "":
			return msgRequired
		}
	}
	if field.Type != forms.FieldNumber || field.Validation == nil || !present || a.Kind == forms.KindList {
		return ""
	}
	v, ok := forms.ParseNumber(a.Text)
	if !ok {
		return ""
	}
	msg := ""
	if lo := field.Validation.Min; lo != nil && v < *lo {
		msg = fmt.Sprintf("Value must be at least %s", formatBound(*lo))
	}
	if hi := field.Validation.Max; hi != nil && v > *hi {
		msg = fmt.Sprintf("Value must be at most %s", formatBound(*hi))
	}
	return msg
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
