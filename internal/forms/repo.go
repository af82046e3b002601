package forms

import "context"

// Repo persists custom forms.
type Repo interface {
	List(ctx context.Context) ([]CustomForm, error)
	Get(ctx context.Context, id string) (CustomForm, error)
	GetByJob(ctx context.Context, jobID string) (CustomForm, error)
	Insert(ctx context.Context, form CustomForm) error
	// UpsertForJob replaces the form attached to form.JobID, keeping the stored
	// id and CreatedAt, or inserts form when none exists. It reports whether an
	// insert happened.
	UpsertForJob(ctx context.Context, form CustomForm) (CustomForm, bool, error)
	// Mutate applies fn to the stored form and persists the result. An error
	// from fn aborts without writing.
	Mutate(ctx context.Context, id string, fn func(*CustomForm) error) (CustomForm, error)
	Delete(ctx context.Context, id string) (CustomForm, error)
	DeleteByJob(ctx context.Context, jobID string) (int, error)
}
