package kv

import (
	"context"
	"sync"
)

// Collection owns one key holding a JSON array of T.
// Read-modify-write sequences on the same Collection are serialized.
// The lock is per process; separate processes sharing a Postgres store can still interleave.
type Collection[T any] struct {
	store    Store
	key      string
	defaults func() []T

	mu sync.Mutex
}

// NewCollection binds a collection to key. defaults, when non-nil, supplies
// the value returned while the key is absent or its value is malformed.
func NewCollection[T any](store Store, key string, defaults func() []T) *Collection[T] {
	return &Collection[T]{store: store, key: key, defaults: defaults}
}

// Key returns the storage key.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the current items, or the defaults when nothing valid is stored.
// Store failures are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.load(ctx)
}

// Update runs fn over the current items and persists the result.
// A read failure or an error from fn aborts without writing.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	return PutJSON(ctx, c.store, c.key, next)
}

// Replace overwrites the stored items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.Update(ctx, func([]T) ([]T, error) { return items, nil })
}

// SeedIfAbsent writes items only when the key has never been written.
// It reports whether a write happened.
func (c *Collection[T]) SeedIfAbsent(ctx context.Context, items []T) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if items == nil {
		items = []T{}
	}
	if err := PutJSON(ctx, c.store, c.key, items); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	var def []T
	if c.defaults != nil {
		def = c.defaults()
	}
	return ReadJSON(ctx, c.store, c.key, def)
}
