package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/validation"
)

// DeleteHook removes records owned by a deleted job.
type DeleteHook interface {
	DeleteByJob(ctx context.Context, jobID string) (int, error)
}

// Query combines keyword search, filtering and sorting for List.
type Query struct {
	Keyword   string
	Filter    Filter
	SortBy    string
	Ascending bool
}

// Service contains business logic for jobs.
type Service struct {
	Repo     Repo
	OnDelete []DeleteHook
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create validates in, assigns an id and equal timestamps, and persists the job.
func (s *Service) Create(ctx context.Context, in Input) (Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	if in.Status == "" {
		in.Status = StatusDraft
	}
	if strings.TrimSpace(in.Type) == "" {
		in.Type = "Full-time"
	}
	if err := validation.Struct(in); err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now()
	job := Job{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Company:          in.Company,
		Location:         strings.TrimSpace(in.Location),
		Type:             strings.TrimSpace(in.Type),
		Description:      in.Description,
		Requirements:     compactLines(in.Requirements),
		Responsibilities: compactLines(in.Responsibilities),
		Salary:           strings.TrimSpace(in.Salary),
		Department:       strings.TrimSpace(in.Department),
		Status:           in.Status,
		CreatedBy:        in.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Insert(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if strings.TrimSpace(id) == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// List returns jobs matching q.
func (s *Service) List(ctx context.Context, q Query) ([]Job, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := q.Filter.Apply(Search(all, q.Keyword))
	if q.SortBy != "" {
		out = Sort(out, q.SortBy, q.Ascending)
	}
	return out, nil
}

// Update merges patch into the job and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Job, error) {
	// Only SetHasCustomForm moves the form flag.
	patch.HasCustomForm = nil
	if err := validation.Struct(patch); err != nil {
		return Job{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if patch.Requirements != nil {
		lines := compactLines(*patch.Requirements)
		patch.Requirements = &lines
	}
	if patch.Responsibilities != nil {
		lines := compactLines(*patch.Responsibilities)
		patch.Responsibilities = &lines
	}
	return s.Repo.Update(ctx, id, patch, s.now())
}

// SetHasCustomForm records whether a form exists for the job.
func (s *Service) SetHasCustomForm(ctx context.Context, jobID string, has bool) error {
	_, err := s.Repo.Update(ctx, jobID, Patch{HasCustomForm: &has}, s.now())
	return err
}

// Delete removes the job and everything registered in OnDelete for it.
// It reports false when the job did not exist.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.Repo.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}

	var errs []error
	for _, hook := range s.OnDelete {
		n, err := hook.DeleteByJob(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if n > 0 {
			telemetry.Info("jobs.cascade_delete", map[string]any{
				"job_id":  id,
				"removed": n,
				"hook":    fmt.Sprintf("%T", hook),
			})
		}
	}
	return true, errors.Join(errs...)
}

// ActiveCount counts active jobs.
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return ActiveCount(all), nil
}

// Recent returns up to limit jobs, most recently updated first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Job, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Recent(all, limit), nil
}

func compactLines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
