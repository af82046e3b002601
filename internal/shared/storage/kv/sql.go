package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type sqlQueries struct {
	get, put, del, keys string
}

var (
	postgresQueries = sqlQueries{
		get: `SELECT value FROM kv_entries WHERE key = $1`,
		put: `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2::jsonb, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		del:  `DELETE FROM kv_entries WHERE key = $1`,
		keys: `SELECT key FROM kv_entries ORDER BY key`,
	}
	sqliteQueries = sqlQueries{
		get: `SELECT value FROM kv_entries WHERE key = ?`,
		put: `
INSERT INTO kv_entries (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		del:  `DELETE FROM kv_entries WHERE key = ?`,
		keys: `SELECT key FROM kv_entries ORDER BY key`,
	}
)

// SQLStore implements Store on the kv_entries table.
type SQLStore struct {
	DB      *sql.DB
	dialect string
	queries sqlQueries
	now     func() time.Time
}

// NewSQLStore returns a store for dialect "postgres" or "sqlite".
func NewSQLStore(db *sql.DB, dialect string) (*SQLStore, error) {
	var q sqlQueries
	switch dialect {
	case "postgres":
		q = postgresQueries
	case "sqlite":
		q = sqliteQueries
	default:
		return nil, fmt.Errorf("kv: unsupported dialect %q", dialect)
	}
	return &SQLStore{DB: db, dialect: dialect, queries: q, now: time.Now}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	updatedAt := s.now().UTC()
	var stamp any = updatedAt
	if s.dialect == "sqlite" {
		stamp = updatedAt.Format(time.RFC3339Nano)
	}
	if _, err := s.DB.ExecContext(ctx, s.queries.put, key, string(value), stamp); err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, s.queries.del, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, s.queries.keys)
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
