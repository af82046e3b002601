package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixtures() []Job {
	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return []Job{
		{ID: "j1", Title: "Frontend Developer", Company: "TechCorp", Location: "Remote", Type: "Full-time",
			Department: "Engineering", Status: StatusActive, HasCustomForm: true,
			CreatedAt: base.Add(-7 * 24 * time.Hour), UpdatedAt: base},
		{ID: "j2", Title: "UX Designer", Company: "DesignHub", Location: "New York, NY", Type: "Full-time",
			Department: "Design", Status: StatusActive, Description: "Join our design team",
			CreatedAt: base.Add(-14 * 24 * time.Hour), UpdatedAt: base.Add(time.Hour)},
		{ID: "j3", Title: "backend Engineer", Company: "ServerStack", Location: "Remote", Type: "Contract",
			Department: "Engineering", Status: StatusDraft,
			CreatedAt: base.Add(-3 * 24 * time.Hour), UpdatedAt: base.Add(-time.Hour)},
	}
}

func ids(all []Job) []string {
	out := make([]string, 0, len(all))
	for _, j := range all {
		out = append(out, j.ID)
	}
	return out
}

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	all := fixtures()
	assert.Equal(t, []string{"j1", "j3"}, ids(Search(all, "ENGINEERING")))
	assert.Equal(t, []string{"j2"}, ids(Search(all, "york")))
	assert.Equal(t, []string{"j2"}, ids(Search(all, "design team")))
	assert.Equal(t, []string{"j1", "j2", "j3"}, ids(Search(all, "   ")))
	assert.Empty(t, Search(all, "nothing-matches"))
}

func TestFilterCombinesCriteria(t *testing.T) {
	all := fixtures()
	yes := true
	no := false

	assert.Equal(t, []string{"j1", "j2"}, ids(Filter{Status: StatusActive}.Apply(all)))
	assert.Equal(t, []string{"j1", "j3"}, ids(Filter{Department: "engineering"}.Apply(all)))
	assert.Equal(t, []string{"j3"}, ids(Filter{Type: "contract"}.Apply(all)))
	assert.Equal(t, []string{"j2"}, ids(Filter{Location: "new york"}.Apply(all)))
	assert.Equal(t, []string{"j1"}, ids(Filter{HasCustomForm: &yes}.Apply(all)))
	assert.Equal(t, []string{"j2", "j3"}, ids(Filter{HasCustomForm: &no}.Apply(all)))
	assert.Equal(t, []string{"j1"}, ids(Filter{Status: StatusActive, Department: "Engineering"}.Apply(all)))
}

func TestFilterDateBoundsAreInclusive(t *testing.T) {
	all := fixtures()
	after := all[0].CreatedAt
	before := all[2].CreatedAt

	assert.Equal(t, []string{"j1", "j3"}, ids(Filter{CreatedAfter: &after}.Apply(all)))
	assert.Equal(t, []string{"j1", "j2", "j3"}, ids(Filter{CreatedBefore: &before}.Apply(all)))
	assert.Equal(t, []string{"j1", "j3"}, ids(Filter{CreatedAfter: &after, CreatedBefore: &before}.Apply(all)))
}

func TestSortByStringAndDate(t *testing.T) {
	all := fixtures()

	assert.Equal(t, []string{"j3", "j1", "j2"}, ids(Sort(all, "title", true)))
	assert.Equal(t, []string{"j2", "j1", "j3"}, ids(Sort(all, "title", false)))
	assert.Equal(t, []string{"j2", "j1", "j3"}, ids(Sort(all, "createdAt", true)))
	assert.Equal(t, []string{"j3", "j1", "j2"}, ids(Sort(all, "createdAt", false)))
	assert.Equal(t, []string{"j1", "j2", "j3"}, ids(Sort(all, "unknown", false)))
	// Stable for equal keys.
	assert.Equal(t, []string{"j1", "j3", "j2"}, ids(Sort(all, "department", false)))
}

func TestProjections(t *testing.T) {
	all := fixtures()
	assert.Equal(t, 2, ActiveCount(all))
	assert.Equal(t, []string{"j3"}, ids(ByStatus(all, StatusDraft)))
	assert.Equal(t, []string{"j2", "j1"}, ids(Recent(all, 2)))
	assert.Equal(t, []string{"j2", "j1", "j3"}, ids(Recent(all, 0)))
}
