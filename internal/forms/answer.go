package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AnswerKind is the value shape an answer carries.
type AnswerKind string

const (
	KindText   AnswerKind = "text"
	KindList   AnswerKind = "list"
	KindNumber AnswerKind = "number"
	KindFile   AnswerKind = "file"
)

// Answer is one submitted value. Text holds the raw string for every kind but
// list; Number is set when a number field's text parses.
type Answer struct {
	Kind   AnswerKind
	Text   string
	List   []string
	Number *float64
}

// TextAnswer builds a text answer.
func TextAnswer(s string) Answer { return Answer{Kind: KindText, Text: s} }

// ListAnswer builds a list answer.
func ListAnswer(items ...string) Answer {
	return Answer{Kind: KindList, List: append([]string{}, items...)}
}

// IsEmpty reports whether the answer counts as not provided.
func (a Answer) IsEmpty() bool {
	if a.Kind == KindList {
		return len(a.List) == 0
	}
	return a.Text == ""
}

// String renders the answer as plain text; lists are comma-joined.
func (a Answer) String() string {
	if a.Kind == KindList {
		return strings.Join(a.List, ", ")
	}
	return a.Text
}

// MarshalJSON writes lists as arrays and everything else as a string.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == KindList {
		if a.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.List)
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON accepts a string, number, boolean, null or an array of scalars.
// Objects are rejected. The kind is provisional until Bind.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrAnswerShape)
	}
	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		list := make([]string, 0, len(raw))
		for _, item := range raw {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			list = append(list, s)
		}
		*a = Answer{Kind: KindList, List: list}
		return nil
	case '{':
		return fmt.Errorf("%w: objects are not accepted", ErrAnswerShape)
	default:
		s, err := scalarString(data)
		if err != nil {
			return err
		}
		*a = Answer{Kind: KindText, Text: s}
		return nil
	}
}

func scalarString(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty value", ErrAnswerShape)
	}
	switch data[0] {
	case '"':
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	case 'n':
		return "", nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '[', '{':
		return "", fmt.Errorf("%w: nested values are not accepted", ErrAnswerShape)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", err
		}
		f, err := n.Float64()
		if err != nil {
			return n.String(), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

// Answers maps field ids to submitted values.
type Answers map[string]Answer

// Get returns the answer for id, or an empty answer.
func (as Answers) Get(id string) (Answer, bool) {
	a, ok := as[id]
	return a, ok
}

// Bind resolves each answer's kind from the form's declared field types.
// A list sent for a scalar field is a shape error; a scalar sent for a
// checkbox becomes a one-item list. Answers for unknown fields are kept as sent.
func (as Answers) Bind(form CustomForm) (Answers, error) {
	out := make(Answers, len(as))
	for id, a := range as {
		fld, ok := form.Field(id)
		if !ok {
			out[id] = a
			continue
		}
		bound, err := bindAnswer(fld, a)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q", err, id)
		}
		out[id] = bound
	}
	return out, nil
}

func bindAnswer(fld Field, a Answer) (Answer, error) {
	if fld.Type == FieldCheckbox {
		if a.Kind == KindList {
			return Answer{Kind: KindList, List: append([]string{}, a.List...)}, nil
		}
		if a.Text == "" {
			return Answer{Kind: KindList, List: []string{}}, nil
		}
		return Answer{Kind: KindList, List: []string{a.Text}}, nil
	}
	if a.Kind == KindList {
		return Answer{}, ErrAnswerShape
	}
	switch fld.Type {
	case FieldNumber:
		out := Answer{Kind: KindNumber, Text: a.Text}
		if v, ok := ParseNumber(a.Text); ok {
			out.Number = &v
		}
		return out, nil
	case FieldFile:
		return Answer{Kind: KindFile, Text: a.Text}, nil
	default:
		return Answer{Kind: KindText, Text: a.Text}, nil
	}
}

// ParseNumber parses s as a finite decimal number, ignoring surrounding space.
// NaN and infinities count as non-numeric.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
