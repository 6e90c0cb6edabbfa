package storage

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/model"
)

// BackupStore snapshots and restores both stored collections as one unit.
type BackupStore struct {
	store blobstore.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewBackupStore constructs a backup store over the given blob store.
func NewBackupStore(store blobstore.Store, log *zap.Logger) *BackupStore {
	return &BackupStore{store: store, log: log, now: time.Now}
}

// Create builds a snapshot of the live collections. Pure read, no side effect.
func (bs *BackupStore) Create() model.Backup {
	return model.Backup{
		Todos:     readJSON(bs.store, bs.log, keyTodos, map[string][]model.Todo{}),
		Users:     readJSON(bs.store, bs.log, keyUsers, map[string]model.User{}),
		Timestamp: bs.now(),
	}
}

// Save persists a fresh snapshot under the backup key.
func (bs *BackupStore) Save() {
	writeJSON(bs.store, bs.log, keyBackup, bs.Create())
}

// Restore overwrites the live collections from the saved snapshot.
// It returns false only when no backup exists.
func (bs *BackupStore) Restore() bool {
	raw, ok, err := bs.store.Get(keyBackup)
	if err != nil || !ok {
		return false
	}
	var b model.Backup
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		bs.log.Warn("saved backup corrupted", zap.Error(err))
		return false
	}
	writeJSON(bs.store, bs.log, keyTodos, b.Todos)
	writeJSON(bs.store, bs.log, keyUsers, b.Users)
	return true
}

// Export serializes a fresh snapshot as indented JSON.
func (bs *BackupStore) Export() string {
	b, err := json.MarshalIndent(bs.Create(), "", "  ")
	if err != nil {
		bs.log.Error("export encode failed", zap.Error(err))
		return ""
	}
	return string(b)
}

// importPayload mirrors the exported shape with presence-checkable fields.
type importPayload struct {
	Todos map[string][]model.Todo `json:"todos"`
	Users map[string]model.User   `json:"users"`
}

// Import parses a serialized snapshot and overwrites the live collections.
// The payload must carry both the todos and users keys; otherwise Import
// returns false and writes nothing (all-or-nothing).
func (bs *BackupStore) Import(serialized string) bool {
	var p importPayload
	if err := json.Unmarshal([]byte(serialized), &p); err != nil {
		bs.log.Warn("import payload malformed", zap.Error(err))
		return false
	}
	if p.Todos == nil || p.Users == nil {
		return false
	}
	writeJSON(bs.store, bs.log, keyTodos, p.Todos)
	writeJSON(bs.store, bs.log, keyUsers, p.Users)
	return true
}
