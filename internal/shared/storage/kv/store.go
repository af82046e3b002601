// Package kv persists JSON documents under string keys.
//
// Each domain collection (jobs, applications, stages, customForms, uploads)
// lives under one key as a JSON array and is rewritten whole on every change.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"ats-backend/internal/shared/telemetry"
)

// Store is the minimal byte-level key-value contract.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// GetJSON decodes the value stored under key into T.
// Absent, unreadable and malformed values all yield def; it never fails.
func GetJSON[T any](ctx context.Context, store Store, key string, def T) T {
	out, err := ReadJSON(ctx, store, key, def)
	if err != nil {
		telemetry.Warn("kv.read_failed", map[string]any{"key": key, "err": err})
		return def
	}
	return out
}

// ReadJSON is GetJSON for callers that write back what they read: absent and
// malformed values yield def, but a store failure is returned.
func ReadJSON[T any](ctx context.Context, store Store, key string, def T) (T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("kv get %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return def, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		telemetry.Warn("kv.decode_failed", map[string]any{"key": key, "err": err, "bytes": len(raw)})
		return def, nil
	}
	return out, nil
}

// PutJSON encodes v and overwrites whatever was stored under key.
func PutJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}
