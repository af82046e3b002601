package jobs

import (
	"sort"
	"strings"
	"time"
)

// Filter narrows a job list. Zero-valued fields are ignored.
type Filter struct {
	Status        Status
	Department    string
	Location      string
	Type          string
	HasCustomForm *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Search returns jobs whose title, company, description, location or department
// contains keyword, ignoring case. A blank keyword matches everything.
func Search(all []Job, keyword string) []Job {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return append([]Job(nil), all...)
	}
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if containsFold(j.Title, needle) ||
			containsFold(j.Company, needle) ||
			containsFold(j.Description, needle) ||
			containsFold(j.Location, needle) ||
			containsFold(j.Department, needle) {
			out = append(out, j)
		}
	}
	return out
}

// Apply returns the jobs matching every set criterion of f.
// Location matches by substring; the other text fields match exactly, ignoring case.
// Date bounds are inclusive.
func (f Filter) Apply(all []Job) []Job {
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Department != "" && !strings.EqualFold(j.Department, f.Department) {
			continue
		}
		if f.Location != "" && !containsFold(j.Location, strings.ToLower(f.Location)) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(j.Type, f.Type) {
			continue
		}
		if f.HasCustomForm != nil && j.HasCustomForm != *f.HasCustomForm {
			continue
		}
		if f.CreatedAfter != nil && j.CreatedAt.Before(*f.CreatedAfter) {
			continue
		}
		if f.CreatedBefore != nil && j.CreatedAt.After(*f.CreatedBefore) {
			continue
		}
		out = append(out, j)
	}
	return out
}

var sortKeys = map[string]func(a, b Job) int{
	"title":         func(a, b Job) int { return compareFold(a.Title, b.Title) },
	"company":       func(a, b Job) int { return compareFold(a.Company, b.Company) },
	"location":      func(a, b Job) int { return compareFold(a.Location, b.Location) },
	"type":          func(a, b Job) int { return compareFold(a.Type, b.Type) },
	"department":    func(a, b Job) int { return compareFold(a.Department, b.Department) },
	"status":        func(a, b Job) int { return compareFold(string(a.Status), string(b.Status)) },
	"salary":        func(a, b Job) int { return compareFold(a.Salary, b.Salary) },
	"createdBy":     func(a, b Job) int { return compareFold(a.CreatedBy, b.CreatedBy) },
	"description":   func(a, b Job) int { return compareFold(a.Description, b.Description) },
	"createdAt":     func(a, b Job) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt":     func(a, b Job) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
	"hasCustomForm": func(a, b Job) int { return compareBool(a.HasCustomForm, b.HasCustomForm) },
}

// SortableField reports whether Sort understands field.
func SortableField(field string) bool {
	_, ok := sortKeys[field]
	return ok
}

// Sort returns a stably sorted copy of all. Unknown fields keep the input order.
func Sort(all []Job, field string, ascending bool) []Job {
	out := append([]Job(nil), all...)
	cmp, ok := sortKeys[field]
	if !ok {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

// ActiveCount counts jobs with status active.
func ActiveCount(all []Job) int {
	n := 0
	for _, j := range all {
		if j.Status == StatusActive {
			n++
		}
	}
	return n
}

// ByStatus returns the jobs with the given status.
func ByStatus(all []Job, status Status) []Job {
	return Filter{Status: status}.Apply(all)
}

// Recent returns up to limit jobs, most recently updated first.
func Recent(all []Job, limit int) []Job {
	if limit <= 0 {
		limit = 5
	}
	out := Sort(all, "updatedAt", false)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
