package health

import (
	"context"
	"errors"
	"testing"

	"ats-backend/internal/shared/storage/kv"
)

type brokenStore struct{}

func (brokenStore) Keys(context.Context) ([]string, error) { return nil, errors.New("connection refused") }

func TestStatus(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Put(ctx, "jobs", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}

	rep := NewService(store, "memory", "local").Status(ctx)
	if !rep.OK || rep.Collections != 1 || rep.KVBackend != "memory" {
		t.Fatalf("unexpected report %+v", rep)
	}

	rep = NewService(brokenStore{}, "postgres", "s3").Status(ctx)
	if rep.OK || rep.Error != "connection refused" {
		t.Fatalf("expected failing report, got %+v", rep)
	}
}
