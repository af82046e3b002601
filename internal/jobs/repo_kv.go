package jobs

import (
	"context"
	"errors"
	"time"

	"ats-backend/internal/shared/storage/kv"
)

// CollectionKey is the store key holding every job.
const CollectionKey = "jobs"

// KVRepo implements Repo over a single key-value collection.
type KVRepo struct {
	items *kv.Collection[Job]
}

// NewKVRepo constructs a KVRepo on store.
func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{items: kv.NewCollection[Job](store, CollectionKey, nil)}
}

// Collection exposes the underlying collection for seeding.
func (r *KVRepo) Collection() *kv.Collection[Job] { return r.items }

func (r *KVRepo) List(ctx context.Context) ([]Job, error) {
	return r.items.Load(ctx)
}

func (r *KVRepo) Get(ctx context.Context, id string) (Job, error) {
	all, err := r.items.Load(ctx)
	if err != nil {
		return Job{}, err
	}
	for _, j := range all {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, ErrNotFound
}

func (r *KVRepo) Insert(ctx context.Context, job Job) error {
	return r.items.Update(ctx, func(all []Job) ([]Job, error) {
		return append(all, job), nil
	})
}

func (r *KVRepo) Update(ctx context.Context, id string, patch Patch, now time.Time) (Job, error) {
	var updated Job
	err := r.items.Update(ctx, func(all []Job) ([]Job, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			patch.Apply(&all[i])
			all[i].UpdatedAt = now
			updated = all[i]
			return all, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return Job{}, err
	}
	return updated, nil
}

func (r *KVRepo) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.items.Update(ctx, func(all []Job) ([]Job, error) {
		out := all[:0:0]
		for _, j := range all {
			if j.ID == id {
				removed = true
				continue
			}
			out = append(out, j)
		}
		if !removed {
			return nil, ErrNotFound
		}
		return out, nil
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
