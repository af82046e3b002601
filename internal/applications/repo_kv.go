package applications

import (
	"context"
	"errors"

	"ats-backend/internal/shared/storage/kv"
)

// CollectionKey is the store key holding every application.
const CollectionKey = "applications"

// KVRepo implements Repo over a single key-value collection.
type KVRepo struct {
	items *kv.Collection[Application]
}

// NewKVRepo constructs a KVRepo on store.
func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{items: kv.NewCollection[Application](store, CollectionKey, nil)}
}

// Collection exposes the underlying collection for seeding.
func (r *KVRepo) Collection() *kv.Collection[Application] { return r.items }

func (r *KVRepo) List(ctx context.Context) ([]Application, error) {
	return r.items.Load(ctx)
}

func (r *KVRepo) Get(ctx context.Context, id string) (Application, error) {
	all, err := r.items.Load(ctx)
	if err != nil {
		return Application{}, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return Application{}, ErrNotFound
}

func (r *KVRepo) Insert(ctx context.Context, app Application) error {
	return r.items.Update(ctx, func(all []Application) ([]Application, error) {
		return append(all, app), nil
	})
}

func (r *KVRepo) Mutate(ctx context.Context, id string, fn func(*Application) error) (Application, error) {
	var updated Application
	err := r.items.Update(ctx, func(all []Application) ([]Application, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			next := all[i]
			next.StageHistory = append([]StageEntry(nil), all[i].StageHistory...)
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
		return Application{}, err
	}
	return updated, nil
}

func (r *KVRepo) Delete(ctx context.Context, id string) (bool, error) {
	err := r.items.Update(ctx, func(all []Application) ([]Application, error) {
		for i := range all {
			if all[i].ID == id {
				return append(all[:i:i], all[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *KVRepo) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	n := 0
	err := r.items.Update(ctx, func(all []Application) ([]Application, error) {
		out := all[:0:0]
		for _, a := range all {
			if a.JobID == jobID {
				n++
				continue
			}
			out = append(out, a)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
