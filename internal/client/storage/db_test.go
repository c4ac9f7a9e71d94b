package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "local_storage"))
	require.True(t, tableExists(t, db, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "local_storage"))
}

func TestInitDatabase_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO local_storage(key, value) VALUES ('themeMode', 'dark')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key='themeMode'`).Scan(&v))
	require.Equal(t, "dark", v)
}

func TestInitDatabase_BadPath(t *testing.T) {
	t.Parallel()

	// a regular file where the parent directory should be
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	_, err := InitDatabase(context.Background(), filepath.Join(parent, "state.db"))
	require.Error(t, err)
}

func TestInitDatabase_CreatesParentDirectory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "nested", "dir", "state.db"))
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db, "local_storage"))
}
