package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKeysDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	db.MustExec(`CREATE TABLE api_keys (
		id     TEXT PRIMARY KEY,
		label  TEXT NOT NULL DEFAULT '',
		status BOOLEAN NOT NULL DEFAULT TRUE
	)`)
	return db
}

func TestKeysRepo_CreateGetRevoke(t *testing.T) {
	repo := NewApiKeysRepo(setupKeysDB(t))
	ctx := context.Background()

	key, err := repo.Create(ctx, "back-office")
	require.NoError(t, err)
	require.NotEmpty(t, key)

	status, err := repo.GetStatus(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Status)

	require.NoError(t, repo.Revoke(ctx, key))

	status, err = repo.GetStatus(ctx, key)
	require.NoError(t, err)
	assert.False(t, status.Status)
}

func TestKeysRepo_UnknownKey(t *testing.T) {
	repo := NewApiKeysRepo(setupKeysDB(t))

	status, err := repo.GetStatus(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, status)
}
