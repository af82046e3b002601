package jobs

import "time"

// Status is the publication state of a job posting.
type Status string

const (
	StatusActive Status = "active"
	StatusDraft  Status = "draft"
	StatusClosed Status = "closed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusClosed:
		return true
	}
	return false
}

// Job is a job posting.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Salary           string    `json:"salary,omitempty"`
	Department       string    `json:"department"`
	Status           Status    `json:"status"`
	HasCustomForm    bool      `json:"hasCustomForm"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Input carries the caller-supplied fields of a new job.
type Input struct {
	Title            string   `json:"title" validate:"required,max=200"`
	Company          string   `json:"company" validate:"required,max=200"`
	Location         string   `json:"location" validate:"max=200"`
	Type             string   `json:"type" validate:"max=100"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Salary           string   `json:"salary"`
	Department       string   `json:"department" validate:"max=100"`
	Status           Status   `json:"status" validate:"omitempty,oneof=active draft closed"`
	CreatedBy        string   `json:"-"`
}

// Patch holds a partial update. Nil fields are left untouched.
// HasCustomForm is never bound from a request; it follows the form repository.
type Patch struct {
	Title            *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Company          *string   `json:"company" validate:"omitempty,min=1,max=200"`
	Location         *string   `json:"location" validate:"omitempty,max=200"`
	Type             *string   `json:"type" validate:"omitempty,max=100"`
	Description      *string   `json:"description"`
	Requirements     *[]string `json:"requirements"`
	Responsibilities *[]string `json:"responsibilities"`
	Salary           *string   `json:"salary"`
	Department       *string   `json:"department" validate:"omitempty,max=100"`
	Status           *Status   `json:"status" validate:"omitempty,oneof=active draft closed"`
	HasCustomForm    *bool     `json:"-"`
}

// Apply merges the non-nil fields of p into j.
func (p Patch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Requirements != nil {
		j.Requirements = cloneStrings(*p.Requirements)
	}
	if p.Responsibilities != nil {
		j.Responsibilities = cloneStrings(*p.Responsibilities)
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Department != nil {
		j.Department = *p.Department
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	if p.HasCustomForm != nil {
		j.HasCustomForm = *p.HasCustomForm
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
