package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	ctx := context.Background()
	database, err := Open(ctx, filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, database.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	require.Equal(t, 1, fk)
}

func TestOpen_MemoryDatabaseKeepsState(t *testing.T) {
	ctx := context.Background()
	database, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.ExecContext(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO t (id) VALUES (1)`)
	require.NoError(t, err)

	var count int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM t`).Scan(&count))
	require.Equal(t, 1, count)
}
