package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/notify"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/validation"
	"ats-backend/internal/stages"
)

// StageSource resolves pipeline stages.
type StageSource interface {
	First(ctx context.Context) (stages.Stage, error)
	Get(ctx context.Context, id string) (stages.Stage, error)
}

// JobLookup resolves job titles for notifications.
type JobLookup interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// Service contains business logic for applications.
type Service struct {
	Repo     Repo
	Stages   StageSource
	Jobs     JobLookup
	Notifier notify.Notifier
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create stores a new application in the first pipeline stage.
func (s *Service) Create(ctx context.Context, in CreateInput) (Application, error) {
	in.JobID = strings.TrimSpace(in.JobID)
	in.CandidateName = strings.TrimSpace(in.CandidateName)
	in.CandidateEmail = strings.TrimSpace(in.CandidateEmail)
	if err := validation.Struct(in); err != nil {
		return Application{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	first, err := s.Stages.First(ctx)
	if err != nil {
		return Application{}, fmt.Errorf("resolve first stage: %w", err)
	}

	now := s.now()
	answers := in.Answers
	if answers == nil {
		answers = forms.Answers{}
	}
	breakdown := in.ScoreBreakdown
	if breakdown == nil {
		breakdown = []ScoreItem{}
	}
	app := Application{
		ID:             uuid.NewString(),
		JobID:          in.JobID,
		CandidateName:  in.CandidateName,
		CandidateEmail: in.CandidateEmail,
		CandidatePhone: strings.TrimSpace(in.CandidatePhone),
		Resume:         in.Resume,
		CoverLetter:    in.CoverLetter,
		CurrentStage:   first,
		StageHistory:   []StageEntry{{StageID: first.ID, EnteredAt: now}},
		Score:          in.Score,
		ScoreBreakdown: breakdown,
		Answers:        answers,
		IsEligible:     in.IsEligible,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Insert(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Get returns an application by id.
func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	if strings.TrimSpace(id) == "" {
		return Application{}, ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// List returns applications matching f.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Application, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, f), nil
}

// UpdateStage moves an application to stageID and appends a history entry.
// Unknown applications or stages return ErrNotFound and change nothing.
// The new entry's time never precedes the previous entry's.
func (s *Service) UpdateStage(ctx context.Context, appID, stageID, notes string) (Application, error) {
	stage, err := s.Stages.Get(ctx, stageID)
	if errors.Is(err, stages.ErrNotFound) {
		return Application{}, fmt.Errorf("%w: stage %s", ErrNotFound, stageID)
	}
	if err != nil {
		return Application{}, err
	}

	now := s.now()
	var from stages.Stage
	app, err := s.Repo.Mutate(ctx, appID, func(a *Application) error {
		from = a.CurrentStage
		entered := now
		if last, ok := a.LastEntry(); ok && entered.Before(last.EnteredAt) {
			entered = last.EnteredAt
		}
		a.CurrentStage = stage
		a.StageHistory = append(a.StageHistory, StageEntry{StageID: stage.ID, EnteredAt: entered, Notes: strings.TrimSpace(notes)})
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Application{}, err
	}

	metrics.IncStageTransition()
	s.notifier().StageChanged(ctx, notify.Event{
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		JobTitle:       s.jobTitle(ctx, app.JobID),
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		FromStage:      from.Name,
		ToStage:        stage.Name,
		Score:          app.Score,
		IsEligible:     app.IsEligible,
		Notes:          notes,
	})
	return app, nil
}

// Update merges patch into the application and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Application, error) {
	if err := validation.Struct(patch); err != nil {
		return Application{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	now := s.now()
	return s.Repo.Mutate(ctx, id, func(a *Application) error {
		patch.Apply(a)
		a.UpdatedAt = now
		return nil
	})
}

// Delete removes an application. It reports false when none existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

// DeleteByJob removes every application for jobID.
func (s *Service) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	return s.Repo.DeleteByJob(ctx, jobID)
}

// CountByStage counts applications per current stage, optionally for one job.
func (s *Service) CountByStage(ctx context.Context, jobID string) (map[string]int, error) {
	all, err := s.List(ctx, ListFilter{JobID: jobID})
	if err != nil {
		return nil, err
	}
	return CountByStage(all), nil
}

// Recent returns up to limit applications, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Application, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Recent(all, limit), nil
}

// NotifySubmitted announces a new application.
func (s *Service) NotifySubmitted(ctx context.Context, app Application) {
	s.notifier().ApplicationSubmitted(ctx, notify.Event{
		ApplicationID:  app.ID,
		JobID:          app.JobID,
		JobTitle:       s.jobTitle(ctx, app.JobID),
		CandidateName:  app.CandidateName,
		CandidateEmail: app.CandidateEmail,
		ToStage:        app.CurrentStage.Name,
		Score:          app.Score,
		IsEligible:     app.IsEligible,
	})
}

func (s *Service) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Nop{}
	}
	return s.Notifier
}

func (s *Service) jobTitle(ctx context.Context, jobID string) string {
	if s.Jobs == nil {
		return ""
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return ""
	}
	return job.Title
}
