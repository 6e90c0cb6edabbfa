package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
	"github.com/and161185/task-keeper/internal/model"
)

func mkUser(id, username string) model.User {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return model.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserStore_SetGetDelete(t *testing.T) {
	us := NewUserStore(blobstore.NewMemory(), zap.NewNop())

	_, ok := us.Get("u1")
	require.False(t, ok)

	us.Set(mkUser("u1", "alice"))
	us.Set(mkUser("u2", "bob"))

	u, ok := us.Get("u1")
	require.True(t, ok)
	require.Equal(t, "alice", u.Username)
	require.Len(t, us.All(), 2)

	// replace keeps the same key
	edited := mkUser("u1", "alice")
	edited.FirstName = "Alice"
	us.Set(edited)
	u, _ = us.Get("u1")
	require.Equal(t, "Alice", u.FirstName)
	require.Len(t, us.All(), 2)

	us.Delete("u1")
	_, ok = us.Get("u1")
	require.False(t, ok)

	us.Delete("u1") // deleting again is a no-op
	require.Len(t, us.All(), 1)
}

func TestUserStore_ByUsername(t *testing.T) {
	us := NewUserStore(blobstore.NewMemory(), zap.NewNop())
	us.Set(mkUser("u1", "alice"))

	u, ok := us.ByUsername("alice")
	require.True(t, ok)
	require.Equal(t, "u1", u.ID)

	_, ok = us.ByUsername("nobody")
	require.False(t, ok)
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	cs := NewCredentialStore(blobstore.NewMemory(), zap.NewNop())

	_, ok := cs.Get("u1")
	require.False(t, ok)

	cs.Set("u1", "argon2id$salt$hash")
	h, ok := cs.Get("u1")
	require.True(t, ok)
	require.Equal(t, "argon2id$salt$hash", h)

	cs.Delete("u1")
	_, ok = cs.Get("u1")
	require.False(t, ok)
}
