package applications

import (
	"sort"
)

// DefaultRecentLimit is used when Recent is asked for a non-positive limit.
const DefaultRecentLimit = 5

// Filter returns the applications matching f, keeping order.
func Filter(all []Application, f ListFilter) []Application {
	out := make([]Application, 0, len(all))
	for _, a := range all {
		if f.JobID != "" && a.JobID != f.JobID {
			continue
		}
		if f.StageID != "" && a.CurrentStage.ID != f.StageID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// CountByStage counts applications by their current stage id.
func CountByStage(all []Application) map[string]int {
	out := make(map[string]int)
	for _, a := range all {
		out[a.CurrentStage.ID]++
	}
	return out
}

// Recent returns up to limit applications, newest CreatedAt first.
func Recent(all []Application, limit int) []Application {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	out := append([]Application(nil), all...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EligibleCount counts applications flagged eligible.
func EligibleCount(all []Application) int {
	n := 0
	for _, a := range all {
		if a.IsEligible {
			n++
		}
	}
	return n
}
