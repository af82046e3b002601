// Package seed writes demo content into collections that were never written.
package seed

import (
	"context"
	"fmt"

	"ats-backend/internal/applications"
	"ats-backend/internal/forms"
	"ats-backend/internal/jobs"
	"ats-backend/internal/shared/storage/kv"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/stages"
)

// Targets are the collections the demo dataset is written to.
type Targets struct {
	Jobs         *kv.Collection[jobs.Job]
	Applications *kv.Collection[applications.Application]
	Forms        *kv.Collection[forms.CustomForm]
	Stages       *kv.Collection[stages.Stage]
}

// Report lists the keys that were written.
type Report struct {
	Seeded []string
}

// Apply seeds each absent key. Existing keys, including empty arrays, are left alone.
func Apply(ctx context.Context, t Targets, data Dataset) (Report, error) {
	var rep Report
	steps := []struct {
		key  string
		seed func() (bool, error)
	}{
		{t.Jobs.Key(), func() (bool, error) { return t.Jobs.SeedIfAbsent(ctx, data.Jobs) }},
		{t.Applications.Key(), func() (bool, error) { return t.Applications.SeedIfAbsent(ctx, data.Applications) }},
		{t.Stages.Key(), func() (bool, error) { return t.Stages.SeedIfAbsent(ctx, data.Stages) }},
		{t.Forms.Key(), func() (bool, error) { return t.Forms.SeedIfAbsent(ctx, data.Forms) }},
	}
	for _, step := range steps {
		wrote, err := step.seed()
		if err != nil {
			return rep, fmt.Errorf("seed %s: %w", step.key, err)
		}
		if wrote {
			rep.Seeded = append(rep.Seeded, step.key)
		}
	}
	if len(rep.Seeded) > 0 {
		telemetry.Info("seed.applied", map[string]any{"keys": rep.Seeded})
	}
	return rep, nil
}
