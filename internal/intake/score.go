package intake

import (
	"math"
	"unicode/utf8"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
)

const (
	// MaxFieldScore is the top raw score a single field can earn.
	MaxFieldScore = 5
	// DefaultScore is reported when no field carries a weight.
	DefaultScore = 85
	// DefaultEligibilityThreshold is the percentage at or above which a candidate is eligible.
	DefaultEligibilityThreshold = 60
)

// Result is the outcome of scoring one submission.
type Result struct {
	Percent    int
	IsEligible bool
	Breakdown  []applications.ScoreItem
}

// Scorer turns weighted answers into a percentage.
type Scorer struct {
	EligibilityThreshold int
}

// NewScorer returns a Scorer with the given threshold.
func NewScorer(threshold int) Scorer {
	return Scorer{EligibilityThreshold: threshold}
}

// Score computes the weighted percentage over fields with a positive weight.
func (s Scorer) Score(form forms.CustomForm, answers forms.Answers) Result {
	var total, maxPossible float64
	for _, field := range form.Fields() {
		w := field.EffectiveWeight()
		if w <= 0 {
			continue
		}
		maxPossible += MaxFieldScore * w
		a, ok := answers.Get(field.ID)
		if !ok {
			continue
		}
		total += float64(FieldScore(field, a)) * w
	}

	percent := DefaultScore
	if maxPossible > 0 {
		percent = int(math.Round(total / maxPossible * 100))
	}
	return Result{
		Percent:    percent,
		IsEligible: percent >= s.EligibilityThreshold,
		Breakdown:  []applications.ScoreItem{{Criteria: "Overall", Score: percent, MaxScore: 100}},
	}
}

// FieldScore is the 0..5 raw score of one answer. Checkboxes count selections,
// numbers scale by tens, and anything else scales by length in runes.
func FieldScore(field forms.Field, a forms.Answer) int {
	switch {
	case field.Type == forms.FieldCheckbox:
		return min(MaxFieldScore, len(a.List))
	case field.Type == forms.FieldNumber:
		if a.Text == "" {
			return 0
		}
		v, ok := forms.ParseNumber(a.Text)
		if !ok {
			return 0
		}
		return clampScore(math.Ceil(v / 10))
	case a.IsEmpty():
		return 0
	default:
		return clampScore(math.Ceil(float64(utf8.RuneCountInString(a.String())) / 20))
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > MaxFieldScore {
		return MaxFieldScore
	}
	return int(v)
}
