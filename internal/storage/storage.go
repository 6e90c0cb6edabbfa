// Package storage maps the flat blob store into typed, user-scoped
// collections: todos-by-user, users-by-id and the backup snapshot.
//
// Every operation is synchronous and never fails from the caller's
// perspective: blob-store read or parse failures degrade to a default value
// at the single-key read boundary (a corrupted value is indistinguishable
// from an absent one), and write failures are logged and dropped. Boolean
// results report the outcomes callers can act on (restore/import).
//
// Read-modify-write sequences are not atomic across concurrent writers; two
// processes racing on the same user's sequence lose updates (last full write
// wins). Single-writer use is assumed.
package storage

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
)

// Blob-store keys for the stored collections. Kept stable so data written
// by older builds keeps loading.
const (
	keyTodos  = "todoapp_todos"
	keyUsers  = "todoapp_users"
	keyBackup = "todoapp_backup"
)

// readJSON loads and decodes the value at key, returning def when the key
// is absent, unreadable or does not parse.
func readJSON[T any](s blobstore.Store, log *zap.Logger, key string, def T) T {
	raw, ok, err := s.Get(key)
	if err != nil {
		log.Warn("blob store read failed", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Warn("stored value corrupted, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return v
}

// writeJSON encodes v and stores it at key. Failures are logged, not returned.
func writeJSON(s blobstore.Store, log *zap.Logger, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.Set(key, string(b)); err != nil {
		log.Error("blob store write failed", zap.String("key", key), zap.Error(err))
	}
}
