package intake

import (
	"context"
	"errors"
	"fmt"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/stages"
)

// JobSource loads the job being applied to.
type JobSource interface {
	Get(ctx context.Context, id string) (jobs.Job, error)
}

// FormSource loads a job's application form.
type FormSource interface {
	GetByJob(ctx context.Context, jobID string) (forms.CustomForm, error)
}

// ApplicationSink stores and moves applications.
type ApplicationSink interface {
	Create(ctx context.Context, in applications.CreateInput) (applications.Application, error)
	UpdateStage(ctx context.Context, appID, stageID, notes string) (applications.Application, error)
	NotifySubmitted(ctx context.Context, app applications.Application)
}

// RejectStages finds the stage auto-rejected applications move to.
type RejectStages interface {
	FirstOfType(ctx context.Context, t stages.Type) (stages.Stage, error)
}

// UploadResolver turns an uploaded file reference into a retrievable URL.
type UploadResolver interface {
	ResolveURL(ctx context.Context, jobID, ref string) (string, bool)
}

// Engine validates, scores and stores public submissions.
type Engine struct {
	Jobs     JobSource
	Forms    FormSource
	Apps     ApplicationSink
	Stages   RejectStages
	Uploads  UploadResolver
	Inferrer Inferrer
	Scorer   Scorer
	// AutoRejectBelow moves submissions scoring under this percentage to the
	// first rejected stage. Zero disables it.
	AutoRejectBelow int
}

// Submission is the stored application plus how it was scored.
type Submission struct {
	Application  applications.Application
	Result       Result
	AutoRejected bool
}

// FormFor returns the job and its form, or ErrNoForm when the job has none.
func (e *Engine) FormFor(ctx context.Context, jobID string) (jobs.Job, forms.CustomForm, error) {
	job, err := e.Jobs.Get(ctx, jobID)
	if errors.Is(err, jobs.ErrNotFound) {
		return jobs.Job{}, forms.CustomForm{}, ErrJobNotFound
	}
	if err != nil {
		return jobs.Job{}, forms.CustomForm{}, err
	}
	form, err := e.Forms.GetByJob(ctx, jobID)
	if errors.Is(err, forms.ErrNotFound) {
		return job, forms.CustomForm{}, ErrNoForm
	}
	if err != nil {
		return jobs.Job{}, forms.CustomForm{}, err
	}
	return job, form, nil
}

// Submit turns raw answers into a stored application. Field failures return
// a *ValidationError and store nothing.
func (e *Engine) Submit(ctx context.Context, jobID string, raw forms.Answers) (Submission, error) {
	_, form, err := e.FormFor(ctx, jobID)
	if err != nil {
		return Submission{}, err
	}
	answers, err := raw.Bind(form)
	if err != nil {
		return Submission{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if problems := Validate(form, answers); len(problems) > 0 {
		metrics.IncApplicationInvalid()
		return Submission{}, &ValidationError{Fields: problems}
	}

	cand := e.inferrer().Infer(form, answers)
	if cand.Resume != "" && e.Uploads != nil {
		if url, ok := e.Uploads.ResolveURL(ctx, jobID, cand.Resume); ok {
			cand.Resume = url
		}
	}
	cand = cand.WithDefaults()
	result := e.Scorer.Score(form, answers)

	app, err := e.Apps.Create(ctx, applications.CreateInput{
		JobID:          jobID,
		CandidateName:  cand.Name,
		CandidateEmail: cand.Email,
		CandidatePhone: cand.Phone,
		Resume:         cand.Resume,
		CoverLetter:    cand.CoverLetter,
		Score:          result.Percent,
		ScoreBreakdown: result.Breakdown,
		Answers:        answers,
		IsEligible:     result.IsEligible,
	})
	if err != nil {
		return Submission{}, fmt.Errorf("create application: %w", err)
	}
	metrics.IncApplicationSubmitted()
	metrics.ObserveScore(result.Percent)

	sub := Submission{Application: app, Result: result}
	if e.AutoRejectBelow > 0 && result.Percent < e.AutoRejectBelow {
		if moved, ok := e.autoReject(ctx, app, result.Percent); ok {
			sub.Application = moved
			sub.AutoRejected = true
		}
	}
	e.Apps.NotifySubmitted(ctx, sub.Application)
	return sub, nil
}

// Preview binds, validates and scores raw without storing or notifying.
func (e *Engine) Preview(ctx context.Context, jobID string, raw forms.Answers) (Candidate, Result, error) {
	_, form, err := e.FormFor(ctx, jobID)
	if err != nil {
		return Candidate{}, Result{}, err
	}
	answers, err := raw.Bind(form)
	if err != nil {
		return Candidate{}, Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if problems := Validate(form, answers); len(problems) > 0 {
		return Candidate{}, Result{}, &ValidationError{Fields: problems}
	}
	cand := e.inferrer().Infer(form, answers).WithDefaults()
	return cand, e.Scorer.Score(form, answers), nil
}

func (e *Engine) autoReject(ctx context.Context, app applications.Application, percent int) (applications.Application, bool) {
	if e.Stages == nil {
		return app, false
	}
	stage, err := e.Stages.FirstOfType(ctx, stages.TypeRejected)
	if err != nil {
		telemetry.Warn("intake.auto_reject_skipped", map[string]any{
			"application_id": app.ID,
			"error":          err,
		})
		return app, false
	}
	notes := fmt.Sprintf("Automatically rejected: score %d%% is below %d%%", percent, e.AutoRejectBelow)
	moved, err := e.Apps.UpdateStage(ctx, app.ID, stage.ID, notes)
	if err != nil {
		telemetry.Error("intake.auto_reject_failed", map[string]any{
			"application_id": app.ID,
			"error":          err,
		})
		return app, false
	}
	metrics.IncApplicationAutoRejected()
	return moved, true
}

func (e *Engine) inferrer() Inferrer {
	if e.Inferrer == nil {
		return DefaultInferrer()
	}
	return e.Inferrer
}
