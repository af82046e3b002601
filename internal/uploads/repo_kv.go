package uploads

import (
	"context"

	"ats-backend/internal/shared/storage/kv"
)

// CollectionKey is the store key holding upload records.
const CollectionKey = "uploads"

// KVRepo implements Repo over a key-value collection.
type KVRepo struct {
	items *kv.Collection[Upload]
}

// NewKVRepo constructs a KVRepo on store.
func NewKVRepo(store kv.Store) *KVRepo {
	return &KVRepo{items: kv.NewCollection[Upload](store, CollectionKey, nil)}
}

func (r *KVRepo) Get(ctx context.Context, id string) (Upload, error) {
	all, err := r.items.Load(ctx)
	if err != nil {
		return Upload{}, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return Upload{}, ErrNotFound
}

func (r *KVRepo) Insert(ctx context.Context, u Upload) error {
	return r.items.Update(ctx, func(all []Upload) ([]Upload, error) {
		return append(all, u), nil
	})
}

// DeleteByJob drops the records of a job. Stored objects are left in place.
func (r *KVRepo) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	n := 0
	err := r.items.Update(ctx, func(all []Upload) ([]Upload, error) {
		out := all[:0:0]
		for _, u := range all {
			if u.JobID == jobID {
				n++
				continue
			}
			out = append(out, u)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
