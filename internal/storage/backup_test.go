package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/and161185/task-keeper/internal/blobstore"
)

func seeded(t *testing.T) (*BackupStore, *TodoStore, *UserStore, *blobstore.Memory) {
	t.Helper()
	blob := blobstore.NewMemory()
	log := zap.NewNop()
	ts := NewTodoStore(blob, log)
	us := NewUserStore(blob, log)
	bs := NewBackupStore(blob, log)

	us.Set(mkUser("u1", "alice"))
	ts.Add("u1", mkTodo("t1", "u1", "seeded"))
	return bs, ts, us, blob
}

func TestBackup_CreateIsPureRead(t *testing.T) {
	bs, _, _, blob := seeded(t)

	b := bs.Create()
	require.Len(t, b.Todos["u1"], 1)
	require.Len(t, b.Users, 1)
	require.False(t, b.Timestamp.IsZero())

	// no backup key was written
	_, ok, err := blob.Get("todoapp_backup")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBackup_SaveRestore(t *testing.T) {
	bs, ts, us, _ := seeded(t)
	bs.Save()

	// mutate live state after the snapshot
	ts.Delete("u1", "t1")
	us.Delete("u1")
	require.Empty(t, ts.Todos("u1"))

	require.True(t, bs.Restore())
	require.Len(t, ts.Todos("u1"), 1)
	_, ok := us.Get("u1")
	require.True(t, ok)
}

func TestBackup_RestoreWithoutBackup(t *testing.T) {
	bs, _, _, _ := seeded(t)
	require.False(t, bs.Restore())
}

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	bs, ts, us, _ := seeded(t)

	exported := bs.Export()
	require.NotEmpty(t, exported)

	require.True(t, bs.Import(exported))
	require.Len(t, ts.Todos("u1"), 1)
	require.Equal(t, "seeded", ts.Todos("u1")[0].Title)
	u, ok := us.Get("u1")
	require.True(t, ok)
	require.Equal(t, "alice", u.Username)
}

func TestBackup_ImportRejectsPartialPayload(t *testing.T) {
	bs, ts, us, _ := seeded(t)

	// missing users key: rejected, nothing overwritten
	require.False(t, bs.Import(`{"todos":{"u9":[]}}`))
	require.Len(t, ts.Todos("u1"), 1)
	_, ok := us.Get("u1")
	require.True(t, ok)

	require.False(t, bs.Import(`{"users":{}}`))
	require.False(t, bs.Import(`not even json`))
	require.Len(t, ts.Todos("u1"), 1)

	// both keys present is enough, even when empty
	require.True(t, bs.Import(`{"todos":{},"users":{}}`))
	require.Empty(t, ts.Todos("u1"))
}

func TestBackup_ClockInjection(t *testing.T) {
	bs, _, _, _ := seeded(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bs.now = func() time.Time { return fixed }

	require.True(t, bs.Create().Timestamp.Equal(fixed))
}
