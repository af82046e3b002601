package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/storage/kv"
)

type flagRecorder struct {
	flags   map[string]bool
	missing map[string]bool
}

func (f *flagRecorder) SetHasCustomForm(_ context.Context, jobID string, has bool) error {
	if f.missing[jobID] {
		return jobs.ErrNotFound
	}
	if f.flags == nil {
		f.flags = map[string]bool{}
	}
	f.flags[jobID] = has
	return nil
}

func newTestService(t *testing.T) (*Service, *flagRecorder, *time.Time) {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	flags := &flagRecorder{}
	svc := &Service{
		Repo: NewKVRepo(kv.NewMemoryStore()),
		Jobs: flags,
		Now:  func() time.Time { return now },
	}
	return svc, flags, &now
}

func basicInput(jobID string) Input {
	return Input{
		JobID: jobID,
		Name:  "Application Form",
		Sections: []Section{{
			Title:  "Personal",
			Fields: []Field{{Type: FieldText, Label: "Full Name", Required: true}},
		}},
	}
}

func TestCreateAssignsIDsAndFlagsJob(t *testing.T) {
	ctx := context.Background()
	svc, flags, _ := newTestService(t)

	form, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.NotEmpty(t, form.Sections[0].ID)
	assert.NotEmpty(t, form.Sections[0].Fields[0].ID)
	assert.Equal(t, form.CreatedAt, form.UpdatedAt)
	assert.True(t, flags.flags["j1"])
}

func TestCreateForSameJobUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _, now := newTestService(t)

	first, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	in := basicInput("j1")
	in.Name = "Revised"
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Revised", all[0].Name)
}

func TestCreateForMissingJobRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, flags, _ := newTestService(t)
	flags.missing = map[string]bool{"ghost": true}

	_, err := svc.Create(ctx, basicInput("ghost"))
	assert.True(t, errors.Is(err, ErrJobNotFound))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Create(ctx, Input{})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	in := basicInput("j1")
	in.Sections[0].Fields[0].Type = "slider"
	_, err = svc.Create(ctx, in)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	lo, hi := 10.0, 1.0
	in = basicInput("j1")
	in.Sections[0].Fields[0] = Field{Type: FieldNumber, Label: "Years", Validation: &Validation{Min: &lo, Max: &hi}}
	_, err = svc.Create(ctx, in)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDeleteClearsJobFlag(t *testing.T) {
	ctx := context.Background()
	svc, flags, _ := newTestService(t)

	form, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, form.ID))
	assert.False(t, flags.flags["j1"])

	_, err = svc.GetByJob(ctx, "j1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, form.ID), ErrNotFound))
}

func TestAddSectionAndField(t *testing.T) {
	ctx := context.Background()
	svc, _, now := newTestService(t)

	form, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)

	*now = now.Add(time.Minute)
	section, err := svc.AddSection(ctx, form.ID, SectionInput{Title: "Experience"})
	require.NoError(t, err)
	assert.NotEmpty(t, section.ID)

	field, err := svc.AddField(ctx, form.ID, section.ID, FieldInput{Type: FieldNumber, Label: "Years"})
	require.NoError(t, err)
	assert.NotEmpty(t, field.ID)

	stored, err := svc.Get(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, stored.Sections, 2)
	assert.Equal(t, field.ID, stored.Sections[1].Fields[0].ID)
	assert.Equal(t, *now, stored.UpdatedAt)
}

func TestAddFieldMissingSectionOrForm(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	form, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)

	_, err = svc.AddField(ctx, form.ID, "nope", FieldInput{Type: FieldText, Label: "X"})
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.AddSection(ctx, "nope", SectionInput{Title: "X"})
	assert.True(t, errors.Is(err, ErrNotFound))

	stored, err := svc.Get(ctx, form.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Sections, 1)
	assert.Len(t, stored.Sections[0].Fields, 1)
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	form, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.Update(ctx, form.ID, Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Len(t, updated.Sections, 1)

	_, err = svc.Update(ctx, "missing", Patch{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteByJob(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	_, err := svc.Create(ctx, basicInput("j1"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, basicInput("j2"))
	require.NoError(t, err)

	n, err := svc.DeleteByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "j2", all[0].JobID)
}
