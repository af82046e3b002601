package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV", "test")
	t.Setenv("KV_BACKEND", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OBJECT_STORE", "local")
	t.Setenv("LOCAL_STORE_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("ELIGIBILITY_THRESHOLD", "60")
	return filepath.Join(dir, "ats.sqlite")
}

func TestSeedIsIdempotent(t *testing.T) {
	db := isolate(t)

	out, err := run(t, "--sqlite-path", db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded:")
	assert.Contains(t, out, "jobs")
	assert.Contains(t, out, "recruiters")

	out, err = run(t, "--sqlite-path", db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to seed")
}

func TestJobsListCountsApplications(t *testing.T) {
	db := isolate(t)
	_, err := run(t, "--sqlite-path", db, "seed")
	require.NoError(t, err)

	out, err := run(t, "--sqlite-path", db, "jobs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Frontend Developer")
	assert.Contains(t, out, "j3")

	out, err = run(t, "--sqlite-path", db, "jobs", "list", "--status", "draft")
	require.NoError(t, err)
	assert.NotContains(t, out, "j1")

	_, err = run(t, "--sqlite-path", db, "jobs", "list", "--status", "archived")
	require.Error(t, err)
}

func TestStagesResetRestoresDefaults(t *testing.T) {
	db := isolate(t)

	out, err := run(t, "--sqlite-path", db, "stages", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "ORDER")
	assert.Contains(t, out, "rejected")

	listed, err := run(t, "--sqlite-path", db, "stages", "list")
	require.NoError(t, err)
	assert.Equal(t, out, listed)
}

func TestScorePrintsResultWithoutStoring(t *testing.T) {
	db := isolate(t)
	_, err := run(t, "--sqlite-path", db, "seed")
	require.NoError(t, err)

	in := filepath.Join(t.TempDir(), "answers.json")
	body := `{"answers": {
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"resume": "ada.pdf",
		"yearsExperience": 12,
		"programmingLanguages": ["Go", "Python", "Java"],
		"availability": "Immediately"
	}}`
	require.NoError(t, os.WriteFile(in, []byte(body), 0o600))

	out, err := run(t, "--sqlite-path", db, "score", "--job", "j1", "--in", in)
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Ada Lovelace", got.CandidateName)
	assert.Equal(t, "ada@example.com", got.CandidateEmail)
	// years 12 -> 2/5, three languages -> 3/5, equal weights.
	assert.Equal(t, 50, got.Score)
	assert.False(t, got.IsEligible)

	list, err := run(t, "--sqlite-path", db, "jobs", "list")
	require.NoError(t, err)
	assert.NotContains(t, list, "Ada")
}

func TestScoreReportsFieldErrors(t *testing.T) {
	db := isolate(t)
	_, err := run(t, "--sqlite-path", db, "seed")
	require.NoError(t, err)

	in := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"answers": {"name": "Ada"}}`), 0o600))

	out, err := run(t, "--sqlite-path", db, "score", "--job", "j1", "--in", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid field")
	assert.Contains(t, out, `"fieldId": "email"`)
}

func TestScoreRequiresFlags(t *testing.T) {
	isolate(t)
	_, err := run(t, "score", "--job", "j1")
	require.Error(t, err)
}
