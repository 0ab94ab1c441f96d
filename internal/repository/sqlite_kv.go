package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/punch/internal/db"
)

// SQLiteKVStore implements KVStore on the kv_store table.
type SQLiteKVStore struct {
	db db.DBTX
}

// NewSQLiteKVStore creates a new SQLiteKVStore.
func NewSQLiteKVStore(conn db.DBTX) *SQLiteKVStore {
	return &SQLiteKVStore{db: conn}
}

func (r *SQLiteKVStore) Get(ctx context.Context, key string) (*KVEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM kv_store WHERE key = ?`, key)

	var e KVEntry
	var updatedAt string
	if err := row.Scan(&e.Key, &e.Value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kv key %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning kv entry: %w", err)
	}
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func (r *SQLiteKVStore) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("putting kv key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteKVStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting kv key %q: %w", key, err)
	}
	return nil
}

// NewSQLiteStateRepo creates a state repository backed by the kv_store table
// on conn.
func NewSQLiteStateRepo(conn db.DBTX, opts ...StateRepoOption) *KVStateRepo {
	return NewKVStateRepo(NewSQLiteKVStore(conn), opts...)
}
