package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/validation"
)

// ErrJobNotFound is returned when a form targets a job that does not exist.
var ErrJobNotFound = errors.New("job not found")

// JobFlagger keeps a job's HasCustomForm flag in step with its form.
type JobFlagger interface {
	SetHasCustomForm(ctx context.Context, jobID string, has bool) error
}

// Service contains business logic for custom forms.
type Service struct {
	Repo Repo
	Jobs JobFlagger
	Now  func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// List returns every form.
func (s *Service) List(ctx context.Context) ([]CustomForm, error) {
	return s.Repo.List(ctx)
}

// Get returns a form by id.
func (s *Service) Get(ctx context.Context, id string) (CustomForm, error) {
	if strings.TrimSpace(id) == "" {
		return CustomForm{}, ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// GetByJob returns the form attached to jobID.
func (s *Service) GetByJob(ctx context.Context, jobID string) (CustomForm, error) {
	if strings.TrimSpace(jobID) == "" {
		return CustomForm{}, ErrNotFound
	}
	return s.Repo.GetByJob(ctx, jobID)
}

// Create stores the form for in.JobID. When the job already has a form it is
// replaced in place and keeps its id; otherwise a new form is inserted and the
// job is flagged as having one.
func (s *Service) Create(ctx context.Context, in Input) (CustomForm, error) {
	in.JobID = strings.TrimSpace(in.JobID)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return CustomForm{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := checkSections(in.Sections); err != nil {
		return CustomForm{}, err
	}

	now := s.now()
	form, inserted, err := s.Repo.UpsertForJob(ctx, CustomForm{
		ID:          uuid.NewString(),
		JobID:       in.JobID,
		Name:        in.Name,
		Description: in.Description,
		Sections:    assignIDs(in.Sections),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return CustomForm{}, err
	}
	if !inserted || s.Jobs == nil {
		return form, nil
	}

	if err := s.Jobs.SetHasCustomForm(ctx, form.JobID, true); err != nil {
		if _, rbErr := s.Repo.Delete(ctx, form.ID); rbErr != nil {
			telemetry.Error("forms.rollback_failed", map[string]any{"form_id": form.ID, "error": rbErr})
		}
		if errors.Is(err, jobs.ErrNotFound) {
			return CustomForm{}, ErrJobNotFound
		}
		return CustomForm{}, err
	}
	return form, nil
}

// Update merges patch into the form and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (CustomForm, error) {
	if err := validation.Struct(patch); err != nil {
		return CustomForm{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if patch.Sections != nil {
		if err := checkSections(*patch.Sections); err != nil {
			return CustomForm{}, err
		}
		sections := assignIDs(*patch.Sections)
		patch.Sections = &sections
	}
	now := s.now()
	return s.Repo.Mutate(ctx, id, func(f *CustomForm) error {
		patch.Apply(f)
		f.UpdatedAt = now
		return nil
	})
}

// Delete removes the form and clears the job's HasCustomForm flag.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if s.Jobs == nil {
		return nil
	}
	if err := s.Jobs.SetHasCustomForm(ctx, removed.JobID, false); err != nil && !errors.Is(err, jobs.ErrNotFound) {
		return err
	}
	return nil
}

// DeleteByJob removes every form attached to jobID.
func (s *Service) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	return s.Repo.DeleteByJob(ctx, jobID)
}

// AddSection appends a section with a fresh id.
func (s *Service) AddSection(ctx context.Context, formID string, in SectionInput) (Section, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return Section{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	section := Section{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Fields:      in.Fields,
	}
	if err := checkSections([]Section{section}); err != nil {
		return Section{}, err
	}
	section = assignIDs([]Section{section})[0]

	now := s.now()
	_, err := s.Repo.Mutate(ctx, formID, func(f *CustomForm) error {
		f.Sections = append(f.Sections, section)
		f.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Section{}, err
	}
	return section, nil
}

// AddField appends a field with a fresh id to a section.
func (s *Service) AddField(ctx context.Context, formID, sectionID string, in FieldInput) (Field, error) {
	in.Label = strings.TrimSpace(in.Label)
	if err := validation.Struct(in); err != nil {
		return Field{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	field := Field{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Label:       in.Label,
		Placeholder: in.Placeholder,
		Required:    in.Required,
		Options:     in.Options,
		Validation:  in.Validation,
		Weight:      in.Weight,
		Role:        in.Role,
	}
	if err := checkField(field); err != nil {
		return Field{}, err
	}

	now := s.now()
	_, err := s.Repo.Mutate(ctx, formID, func(f *CustomForm) error {
		for i := range f.Sections {
			if f.Sections[i].ID == sectionID {
				f.Sections[i].Fields = append(f.Sections[i].Fields, field)
				f.UpdatedAt = now
				return nil
			}
		}
		return fmt.Errorf("%w: section %s", ErrNotFound, sectionID)
	})
	if err != nil {
		return Field{}, err
	}
	return field, nil
}

// assignIDs returns a copy of sections with blank section and field ids filled.
func assignIDs(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, sec := range sections {
		if strings.TrimSpace(sec.ID) == "" {
			sec.ID = uuid.NewString()
		}
		fields := make([]Field, len(sec.Fields))
		for j, f := range sec.Fields {
			if strings.TrimSpace(f.ID) == "" {
				f.ID = uuid.NewString()
			}
			fields[j] = f
		}
		sec.Fields = fields
		out[i] = sec
	}
	return out
}

func checkSections(sections []Section) error {
	if err := validation.Struct(sectionList{Sections: sections}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	seen := map[string]bool{}
	for _, sec := range sections {
		for _, f := range sec.Fields {
			if err := checkField(f); err != nil {
				return err
			}
			if f.ID == "" {
				continue
			}
			if seen[f.ID] {
				return fmt.Errorf("%w: duplicate field id %q", ErrInvalidInput, f.ID)
			}
			seen[f.ID] = true
		}
	}
	return nil
}

func checkField(f Field) error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, f.Type)
	}
	if v := f.Validation; v != nil && v.Min != nil && v.Max != nil && *v.Min > *v.Max {
		return fmt.Errorf("%w: field %q has min greater than max", ErrInvalidInput, f.Label)
	}
	return nil
}

type sectionList struct {
	Sections []Section `json:"sections" validate:"dive"`
}
