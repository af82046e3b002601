package applications

import (
	"time"

	"ats-backend/internal/forms"
	"ats-backend/internal/stages"
)

// StageEntry records when an application entered a stage.
type StageEntry struct {
	StageID   string    `json:"stageId"`
	EnteredAt time.Time `json:"enteredAt"`
	Notes     string    `json:"notes,omitempty"`
}

// ScoreItem is one line of a score breakdown.
type ScoreItem struct {
	Criteria string `json:"criteria"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
}

// Application is a candidate's submission for one job.
// CurrentStage is a snapshot; later catalog edits do not rewrite it.
type Application struct {
	ID             string        `json:"id"`
	JobID          string        `json:"jobId"`
	CandidateName  string        `json:"candidateName"`
	CandidateEmail string        `json:"candidateEmail"`
	CandidatePhone string        `json:"candidatePhone,omitempty"`
	Resume         string        `json:"resume"`
	CoverLetter    string        `json:"coverLetter,omitempty"`
	CurrentStage   stages.Stage  `json:"currentStage"`
	StageHistory   []StageEntry  `json:"stageHistory"`
	Score          int           `json:"score"`
	ScoreBreakdown []ScoreItem   `json:"scoreBreakdown"`
	Answers        forms.Answers `json:"answers"`
	IsEligible     bool          `json:"isEligible"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// LastEntry returns the newest history entry.
func (a Application) LastEntry() (StageEntry, bool) {
	if len(a.StageHistory) == 0 {
		return StageEntry{}, false
	}
	return a.StageHistory[len(a.StageHistory)-1], true
}

// Length caps on candidate contact fields, in runes. They match the
// validate tags on CreateInput and Patch.
const (
	MaxCandidateName  = 200
	MaxCandidateEmail = 320
	MaxCandidatePhone = 50
)

// CreateInput carries everything but the generated fields.
type CreateInput struct {
	JobID          string        `json:"jobId" validate:"required"`
	CandidateName  string        `json:"candidateName" validate:"required,max=200"`
	CandidateEmail string        `json:"candidateEmail" validate:"required,max=320"`
	CandidatePhone string        `json:"candidatePhone" validate:"max=50"`
	Resume         string        `json:"resume"`
	CoverLetter    string        `json:"coverLetter"`
	Score          int           `json:"score" validate:"min=0,max=100"`
	ScoreBreakdown []ScoreItem   `json:"scoreBreakdown"`
	Answers        forms.Answers `json:"answers"`
	IsEligible     bool          `json:"isEligible"`
}

// Patch holds the recruiter-editable fields. Stage and history change only
// through stage transitions.
type Patch struct {
	IsEligible     *bool   `json:"isEligible"`
	CandidatePhone *string `json:"candidatePhone" validate:"omitempty,max=50"`
	CoverLetter    *string `json:"coverLetter"`
}

// Apply merges the non-nil fields of p into a.
func (p Patch) Apply(a *Application) {
	if p.IsEligible != nil {
		a.IsEligible = *p.IsEligible
	}
	if p.CandidatePhone != nil {
		a.CandidatePhone = *p.CandidatePhone
	}
	if p.CoverLetter != nil {
		a.CoverLetter = *p.CoverLetter
	}
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	JobID   string
	StageID string
}
