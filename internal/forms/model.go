package forms

import "time"

// FieldType is the input control a field renders as.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldDate     FieldType = "date"
	FieldFile     FieldType = "file"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldSelect, FieldCheckbox, FieldRadio,
		FieldDate, FieldFile, FieldNumber, FieldEmail, FieldPhone:
		return true
	}
	return false
}

// Role tags a field as the source of a candidate attribute.
type Role string

const (
	RoleName        Role = "name"
	RoleEmail       Role = "email"
	RolePhone       Role = "phone"
	RoleResume      Role = "resume"
	RoleCoverLetter Role = "coverLetter"
)

// Validation holds numeric bounds and an optional pattern.
type Validation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

// Field is one input of a form section.
type Field struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type" validate:"required,oneof=text textarea select checkbox radio date file number email phone"`
	Label       string      `json:"label" validate:"max=300"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required"`
	Options     []string    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
	Weight      *float64    `json:"weight,omitempty" validate:"omitempty,min=0"`
	Role        Role        `json:"role,omitempty" validate:"omitempty,oneof=name email phone resume coverLetter"`
}

// EffectiveWeight returns the scoring weight, zero when unset or negative.
func (f Field) EffectiveWeight() float64 {
	if f.Weight == nil || *f.Weight < 0 {
		return 0
	}
	return *f.Weight
}

// Section groups fields under a title.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" validate:"max=300"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields" validate:"dive"`
}

// CustomForm is the application form attached to one job.
type CustomForm struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Fields returns every field of the form in section order.
func (f CustomForm) Fields() []Field {
	var out []Field
	for _, s := range f.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

// Field looks up a field by id.
func (f CustomForm) Field(id string) (Field, bool) {
	for _, s := range f.Sections {
		for _, fld := range s.Fields {
			if fld.ID == id {
				return fld, true
			}
		}
	}
	return Field{}, false
}

// Input is the body of a form create or full update.
type Input struct {
	JobID       string    `json:"jobId" validate:"required"`
	Name        string    `json:"name" validate:"max=300"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections" validate:"dive"`
}

// Patch holds a partial form update. Nil fields are left untouched.
type Patch struct {
	Name        *string    `json:"name" validate:"omitempty,max=300"`
	Description *string    `json:"description"`
	Sections    *[]Section `json:"sections"`
}

// Apply merges the non-nil fields of p into f.
func (p Patch) Apply(f *CustomForm) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Sections != nil {
		f.Sections = *p.Sections
	}
}

// SectionInput describes a section to append.
type SectionInput struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields" validate:"dive"`
}

// FieldInput describes a field to append.
type FieldInput struct {
	Type        FieldType   `json:"type" validate:"required,oneof=text textarea select checkbox radio date file number email phone"`
	Label       string      `json:"label" validate:"required,max=300"`
	Placeholder string      `json:"placeholder"`
	Required    bool        `json:"required"`
	Options     []string    `json:"options"`
	Validation  *Validation `json:"validation"`
	Weight      *float64    `json:"weight" validate:"omitempty,min=0"`
	Role        Role        `json:"role" validate:"omitempty,oneof=name email phone resume coverLetter"`
}
