package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/shared/storage/kv"
)

func twoStageCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat := NewCatalog(kv.NewMemoryStore())
	_, err := cat.Save(context.Background(), []Stage{
		{ID: "a", Name: "Applied", Type: TypeApplied},
		{ID: "h", Name: "Hired", Type: TypeHired},
	})
	require.NoError(t, err)
	return cat
}

func TestDraftRemoveRejectsBelowTwo(t *testing.T) {
	ctx := context.Background()
	cat := twoStageCatalog(t)

	d, err := cat.Draft(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Remove("a"), ErrMinStages)
	assert.Len(t, d.Stages(), 2)
}

func TestDraftAddRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	d, err := NewCatalog(kv.NewMemoryStore()).Draft(ctx)
	require.NoError(t, err)

	_, err = d.Add(Input{Name: "interview"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = d.Add(Input{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	added, err := d.Add(Input{Name: "Reference Check", Type: TypeReference})
	require.NoError(t, err)
	assert.Equal(t, 7, added.Order)
	assert.NotEmpty(t, added.ID)
}

func TestDraftHoldsEditsUntilCommit(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog(kv.NewMemoryStore())

	d, err := cat.Draft(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Rename("s2", "Phone Screen"))
	require.NoError(t, d.Recolor("s2", "#000000"))
	require.NoError(t, d.Move("s7", 0))

	stored, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Screening", stored[1].Name)

	saved, err := d.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s7", saved[0].ID)
	assert.Equal(t, 0, saved[0].Order)
	assert.Equal(t, "s1", saved[1].ID)
	assert.Equal(t, 1, saved[1].Order)

	stored, err = cat.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, stored)
	assert.Equal(t, "Phone Screen", stored[2].Name)
	assert.Equal(t, "#000000", stored[2].Color)
}

func TestDraftRenameAndSetTypeValidation(t *testing.T) {
	ctx := context.Background()
	d, err := NewCatalog(kv.NewMemoryStore()).Draft(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Rename("s1", "OFFER"), ErrDuplicateName)
	assert.NoError(t, d.Rename("s1", "applied"))
	assert.ErrorIs(t, d.Rename("missing", "x"), ErrNotFound)
	assert.ErrorIs(t, d.SetType("s1", "bogus"), ErrInvalidInput)
	assert.ErrorIs(t, d.Recolor("s1", "red"), ErrInvalidInput)
}

func TestDraftMoveClampsPosition(t *testing.T) {
	ctx := context.Background()
	d, err := NewCatalog(kv.NewMemoryStore()).Draft(ctx)
	require.NoError(t, err)

	require.NoError(t, d.Move("s1", 99))
	all := d.Stages()
	assert.Equal(t, "s1", all[len(all)-1].ID)
	assert.Equal(t, len(all)-1, all[len(all)-1].Order)
}

func TestEditAbortsOnError(t *testing.T) {
	ctx := context.Background()
	cat := twoStageCatalog(t)

	_, err := cat.Edit(ctx, func(d *Draft) error {
		require.NoError(t, d.Rename("a", "Sourced"))
		return d.Remove("h")
	})
	assert.ErrorIs(t, err, ErrMinStages)

	stored, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Applied", stored[0].Name)
}
