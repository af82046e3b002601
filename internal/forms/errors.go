package forms

import "errors"

var (
	ErrNotFound     = errors.New("form not found")
	ErrInvalidInput = errors.New("invalid form")
	ErrAnswerShape  = errors.New("answer does not match field type")
)
