package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Store implements blobstore.Store on a single kv table. Each blob-store
// key maps to one row, so Set is a plain upsert and needs no transaction.
//
// Store methods are synchronous from the caller's perspective; the context
// given at construction bounds every query.
type Store struct {
	db  *DB
	ctx context.Context
}

// NewStore constructs a blob store over db. ctx is attached to all
// queries the store issues.
func NewStore(ctx context.Context, db *DB) *Store {
	return &Store{db: db, ctx: ctx}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	const q = `SELECT value FROM kv WHERE key=$1`
	var v string
	err := s.db.Pool.QueryRow(s.ctx, q, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	const q = `
INSERT INTO kv (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := s.db.Pool.Exec(s.ctx, q, key, value)
	return err
}

// Remove deletes the key if present.
func (s *Store) Remove(key string) error {
	const q = `DELETE FROM kv WHERE key=$1`
	_, err := s.db.Pool.Exec(s.ctx, q, key)
	return err
}

// Clear removes every key.
func (s *Store) Clear() error {
	const q = `DELETE FROM kv`
	_, err := s.db.Pool.Exec(s.ctx, q)
	return err
}
