package applications

import "context"

// Repo persists applications.
type Repo interface {
	List(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id string) (Application, error)
	Insert(ctx context.Context, app Application) error
	// Mutate applies fn to the stored application and persists the result.
	// An error from fn aborts without writing.
	Mutate(ctx context.Context, id string, fn func(*Application) error) (Application, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByJob(ctx context.Context, jobID string) (int, error)
}
