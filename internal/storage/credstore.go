package storage

import (
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
)

const keyCreds = "todoapp_credentials"

// CredentialStore keeps password hashes for accounts created locally
// (offline signup, offline first login). Hashes live under their own key so
// they are never exported with backups or user records.
type CredentialStore struct {
	store blobstore.Store
	log   *zap.Logger
}

// NewCredentialStore constructs a credential store over the given blob store.
func NewCredentialStore(store blobstore.Store, log *zap.Logger) *CredentialStore {
	return &CredentialStore{store: store, log: log}
}

func (cs *CredentialStore) all() map[string]string {
	return readJSON(cs.store, cs.log, keyCreds, map[string]string{})
}

// Get returns the stored password hash for userID, or ok=false.
func (cs *CredentialStore) Get(userID string) (string, bool) {
	h, ok := cs.all()[userID]
	return h, ok
}

// Set stores the password hash for userID.
func (cs *CredentialStore) Set(userID, hash string) {
	creds := cs.all()
	creds[userID] = hash
	writeJSON(cs.store, cs.log, keyCreds, creds)
}

// Delete removes the hash for userID. Absent ids are a no-op.
func (cs *CredentialStore) Delete(userID string) {
	creds := cs.all()
	delete(creds, userID)
	writeJSON(cs.store, cs.log, keyCreds, creds)
}
