package forms

import (
	"context"

	"ats-backend/internal/shared/storage/kv"
)

// CollectionKey is the store key holding every custom form.
const CollectionKey = "customForms"

// KVRepo implements Repo over a single key-value collection.
type KVRepo struct {
	items *kv.Collection[CustomForm]
}

// NewKVRepo constructs a KVRepo on store.
func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{items: kv.NewCollection[CustomForm](store, CollectionKey, nil)}
}

// Collection exposes the underlying collection for seeding.
func (r *KVRepo) Collection() *kv.Collection[CustomForm] { return r.items }

func (r *KVRepo) List(ctx context.Context) ([]CustomForm, error) {
	return r.items.Load(ctx)
}

func (r *KVRepo) Get(ctx context.Context, id string) (CustomForm, error) {
	return r.find(ctx, func(f CustomForm) bool { return f.ID == id })
}

func (r *KVRepo) GetByJob(ctx context.Context, jobID string) (CustomForm, error) {
	return r.find(ctx, func(f CustomForm) bool { return f.JobID == jobID })
}

func (r *KVRepo) find(ctx context.Context, match func(CustomForm) bool) (CustomForm, error) {
	all, err := r.items.Load(ctx)
	if err != nil {
		return CustomForm{}, err
	}
	for _, f := range all {
		if match(f) {
			return f, nil
		}
	}
	return CustomForm{}, ErrNotFound
}

func (r *KVRepo) Insert(ctx context.Context, form CustomForm) error {
	return r.items.Update(ctx, func(all []CustomForm) ([]CustomForm, error) {
		return append(all, form), nil
	})
}

func (r *KVRepo) UpsertForJob(ctx context.Context, form CustomForm) (CustomForm, bool, error) {
	inserted := true
	err := r.items.Update(ctx, func(all []CustomForm) ([]CustomForm, error) {
		for i := range all {
			if all[i].JobID != form.JobID {
				continue
			}
			form.ID = all[i].ID
			form.CreatedAt = all[i].CreatedAt
			all[i] = form
			inserted = false
			return all, nil
		}
		return append(all, form), nil
	})
	if err != nil {
		return CustomForm{}, false, err
	}
	return form, inserted, nil
}

func (r *KVRepo) Mutate(ctx context.Context, id string, fn func(*CustomForm) error) (CustomForm, error) {
	var updated CustomForm
	err := r.items.Update(ctx, func(all []CustomForm) ([]CustomForm, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			next := cloneForm(all[i])
			if err := fn(&next); err != nil {
				return nil, err
			}
			all[i] = next
			updated = next
			return all, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return CustomForm{}, err
	}
	return updated, nil
}

func (r *KVRepo) Delete(ctx context.Context, id string) (CustomForm, error) {
	var removed CustomForm
	err := r.items.Update(ctx, func(all []CustomForm) ([]CustomForm, error) {
		for i := range all {
			if all[i].ID == id {
				removed = all[i]
				return append(all[:i:i], all[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return CustomForm{}, err
	}
	return removed, nil
}

func (r *KVRepo) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	n := 0
	err := r.items.Update(ctx, func(all []CustomForm) ([]CustomForm, error) {
		out := all[:0:0]
		for _, f := range all {
			if f.JobID == jobID {
				n++
				continue
			}
			out = append(out, f)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// cloneForm copies the section and field slices so a failed mutation leaves
// the loaded value untouched.
func cloneForm(f CustomForm) CustomForm {
	out := f
	out.Sections = make([]Section, len(f.Sections))
	for i, s := range f.Sections {
		s.Fields = append([]Field(nil), s.Fields...)
		out.Sections[i] = s
	}
	return out
}
