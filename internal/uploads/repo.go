package uploads

import "context"

// Repo persists upload records. File bytes live in the object store.
type Repo interface {
	Get(ctx context.Context, id string) (Upload, error)
	Insert(ctx context.Context, u Upload) error
	DeleteByJob(ctx context.Context, jobID string) (int, error)
}
