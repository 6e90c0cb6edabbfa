package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestStore_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(context.Background(), db)

	mock.ExpectQuery(`SELECT value FROM kv WHERE key=\$1`).
		WithArgs("todoapp_todos").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"u1":[]}`))
	v, ok, err := s.Get("todoapp_todos")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"u1":[]}`, v)

	// absent key is not an error
	mock.ExpectQuery(`SELECT value FROM kv WHERE key=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	_, ok, err = s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	// real failures surface
	mock.ExpectQuery(`SELECT value FROM kv WHERE key=\$1`).
		WithArgs("boom").
		WillReturnError(errors.New("connection reset"))
	_, _, err = s.Get("boom")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_Upsert(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(context.Background(), db)

	mock.ExpectExec(`INSERT INTO kv \(key, value\) VALUES \(\$1, \$2\)`).
		WithArgs("todoapp_users", `{}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, s.Set("todoapp_users", `{}`))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Remove_Clear(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	s := NewStore(context.Background(), db)

	mock.ExpectExec(`DELETE FROM kv WHERE key=\$1`).
		WithArgs("todoapp_backup").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, s.Remove("todoapp_backup"))

	mock.ExpectExec(`DELETE FROM kv`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	require.NoError(t, s.Clear())

	require.NoError(t, mock.ExpectationsWereMet())
}
