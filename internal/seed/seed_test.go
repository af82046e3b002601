package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/storage/kv"
	"ats-backend/internal/stages"
)

func targets(store kv.Store) Targets {
	return Targets{
		Jobs:         jobs.NewKVRepo(store).Collection(),
		Applications: applications.NewKVRepo(store).Collection(),
		Forms:        forms.NewKVRepo(store).Collection(),
		Stages:       stages.NewCatalog(store).Collection(),
	}
}

func TestApplySeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	rep, err := Apply(ctx, targets(store), Demo(now))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"jobs", "applications", "stages", "customForms"}, rep.Seeded)

	all, err := jobs.NewKVRepo(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Frontend Developer", all[0].Title)
	assert.Equal(t, now.Add(-7*day), all[0].CreatedAt)

	rep, err = Apply(ctx, targets(store), Demo(now))
	require.NoError(t, err)
	assert.Empty(t, rep.Seeded)
}

func TestApplyLeavesEmptyCollectionsAlone(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, kv.PutJSON(ctx, store, applications.CollectionKey, []applications.Application{}))

	rep, err := Apply(ctx, targets(store), Demo(time.Now()))
	require.NoError(t, err)
	assert.NotContains(t, rep.Seeded, "applications")

	apps, err := applications.NewKVRepo(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestDemoDataIsConsistent(t *testing.T) {
	data := Demo(time.Now())
	jobIDs := map[string]bool{}
	for _, j := range data.Jobs {
		jobIDs[j.ID] = true
	}
	for _, a := range data.Applications {
		assert.True(t, jobIDs[a.JobID], "application %s points at unknown job", a.ID)
		last, ok := a.LastEntry()
		require.True(t, ok)
		assert.Equal(t, a.CurrentStage.ID, last.StageID)
	}
	require.Len(t, data.Forms, 1)
	assert.Len(t, data.Forms[0].Fields(), 8)
	assert.Len(t, data.Stages, 7)
}
