// Package notify tells recruiters about new applications and pipeline moves.
package notify

import "context"

// Event describes one application change.
type Event struct {
	ApplicationID  string
	JobID          string
	JobTitle       string
	CandidateName  string
	CandidateEmail string
	FromStage      string
	ToStage        string
	Score          int
	IsEligible     bool
	Notes          string
}

// Notifier delivers events. Implementations log failures instead of returning them.
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, ev Event)
	StageChanged(ctx context.Context, ev Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) ApplicationSubmitted(context.Context, Event) {}
func (Nop) StageChanged(context.Context, Event)         {}
