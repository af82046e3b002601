package intake

import (
	"strings"
	"unicode/utf8"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
)

// Fallback candidate values used when nothing in the answers identifies them.
const (
	DefaultCandidateName  = "Anonymous Candidate"
	DefaultCandidateEmail = "anonymous@example.com"
	DefaultResumeURL      = "https://example.com/default-resume.pdf"
)

// Candidate holds the contact details pulled out of a submission.
type Candidate struct {
	Name        string
	Email       string
	Phone       string
	Resume      string
	CoverLetter string
}

// fill copies every field of other that is still empty in c.
func (c *Candidate) fill(other Candidate) {
	if c.Name == "" {
		c.Name = other.Name
	}
	if c.Email == "" {
		c.Email = other.Email
	}
	if c.Phone == "" {
		c.Phone = other.Phone
	}
	if c.Resume == "" {
		c.Resume = other.Resume
	}
	if c.CoverLetter == "" {
		c.CoverLetter = other.CoverLetter
	}
}

// WithDefaults trims the contact fields, cuts them to the stored length caps
// and substitutes the placeholders for a missing name, email or resume.
func (c Candidate) WithDefaults() Candidate {
	c.Name = clip(c.Name, applications.MaxCandidateName)
	c.Email = clip(c.Email, applications.MaxCandidateEmail)
	c.Phone = clip(c.Phone, applications.MaxCandidatePhone)
	c.Resume = strings.TrimSpace(c.Resume)
	if c.Name == "" {
		c.Name = DefaultCandidateName
	}
	if c.Email == "" {
		c.Email = DefaultCandidateEmail
	}
	if c.Resume == "" {
		c.Resume = DefaultResumeURL
	}
	return c
}

func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}

// Inferrer extracts candidate details from answers. Unresolved fields stay empty.
type Inferrer interface {
	Infer(form forms.CustomForm, answers forms.Answers) Candidate
}

// Chain runs inferrers in order; earlier results win.
type Chain []Inferrer

func (ch Chain) Infer(form forms.CustomForm, answers forms.Answers) Candidate {
	var out Candidate
	for _, inf := range ch {
		out.fill(inf.Infer(form, answers))
	}
	return out
}

// DefaultInferrer prefers explicit role tags and falls back to label matching.
func DefaultInferrer() Inferrer {
	return Chain{RoleInferrer{}, LabelInferrer{}}
}

// RoleInferrer reads fields tagged with an explicit role. Untagged email and
// phone fields count as tagged with that role.
type RoleInferrer struct{}

func (RoleInferrer) Infer(form forms.CustomForm, answers forms.Answers) Candidate {
	var out Candidate
	for _, field := range form.Fields() {
		role := field.Role
		if role == "" {
			switch field.Type {
			case forms.FieldEmail:
				role = forms.RoleEmail
			case forms.FieldPhone:
				role = forms.RolePhone
			default:
				continue
			}
		}
		v := answerText(answers, field.ID)
		if v == "" {
			continue
		}
		var next Candidate
		switch role {
		case forms.RoleName:
			next.Name = v
		case forms.RoleEmail:
			next.Email = v
		case forms.RolePhone:
			next.Phone = v
		case forms.RoleResume:
			next.Resume = v
		case forms.RoleCoverLetter:
			next.CoverLetter = v
		}
		out.fill(next)
	}
	return out
}

// LabelInferrer matches words in field labels, case-insensitively. Each field
// is tried against name, email, resume/cv and cover letter in that order and
// feeds at most one attribute; a later matching field overwrites an earlier one,
// even with an empty answer. Phone is taken only from fields labelled exactly
// as a phone number. When name or email is still missing, a second pass takes
// the first answered text field as the name, or else the first text field
// containing "@" as the email.
type LabelInferrer struct{}

var phoneLabels = map[string]bool{
	"phone":            true,
	"phone number":     true,
	"telephone":        true,
	"mobile":           true,
	"mobile number":    true,
	"mobile phone":     true,
	"contact number":   true,
	"telephone number": true,
}

func (LabelInferrer) Infer(form forms.CustomForm, answers forms.Answers) Candidate {
	var out Candidate
	fields := form.Fields()
	for _, field := range fields {
		label := strings.ToLower(strings.TrimSpace(field.Label))
		v := answerText(answers, field.ID)
		switch {
		case strings.Contains(label, "name"):
			out.Name = v
		case strings.Contains(label, "email"):
			out.Email = v
		case strings.Contains(label, "resume") || strings.Contains(label, "cv"):
			out.Resume = v
		case strings.Contains(label, "cover letter"):
			out.CoverLetter = v
		case phoneLabels[label]:
			out.Phone = v
		}
	}

	if out.Name != "" && out.Email != "" {
		return out
	}
	for _, field := range fields {
		if field.Type != forms.FieldText {
			continue
		}
		v := answerText(answers, field.ID)
		if out.Name == "" && v != "" {
			out.Name = v
		} else if out.Email == "" && strings.Contains(v, "@") {
			out.Email = v
		}
	}
	return out
}

func answerText(answers forms.Answers, id string) string {
	a, ok := answers.Get(id)
	if !ok {
		return ""
	}
	return a.String()
}
