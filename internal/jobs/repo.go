package jobs

import (
	"context"
	"time"
)

// Repo defines persistence operations for jobs.
type Repo interface {
	List(ctx context.Context) ([]Job, error)
	Get(ctx context.Context, id string) (Job, error)
	Insert(ctx context.Context, job Job) error
	// Update applies patch and stamps UpdatedAt; unknown ids return ErrNotFound without writing.
	Update(ctx context.Context, id string, patch Patch, now time.Time) (Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}
