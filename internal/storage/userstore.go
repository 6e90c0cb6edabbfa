package storage

import (
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/model"
)

// UserStore persists the users-by-id mapping. The mapping is keyed directly
// by user id, so no extra ownership filter applies here.
type UserStore struct {
	store blobstore.Store
	log   *zap.Logger
}

// NewUserStore constructs a user store over the given blob store.
func NewUserStore(store blobstore.Store, log *zap.Logger) *UserStore {
	return &UserStore{store: store, log: log}
}

// All returns every stored user keyed by id.
func (us *UserStore) All() map[string]model.User {
	return readJSON(us.store, us.log, keyUsers, map[string]model.User{})
}

// Get returns the user with the given id, or ok=false when absent.
func (us *UserStore) Get(userID string) (model.User, bool) {
	u, ok := us.All()[userID]
	return u, ok
}

// ByUsername returns the first user with the given username, or ok=false.
func (us *UserStore) ByUsername(username string) (model.User, bool) {
	for _, u := range us.All() {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

// Set inserts or replaces the user record keyed by its id.
func (us *UserStore) Set(u model.User) {
	users := us.All()
	users[u.ID] = u
	writeJSON(us.store, us.log, keyUsers, users)
}

// Delete removes the user with the given id. Absent ids are a no-op.
func (us *UserStore) Delete(userID string) {
	users := us.All()
	delete(users, userID)
	writeJSON(us.store, us.log, keyUsers, users)
}
