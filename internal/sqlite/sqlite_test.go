package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/checkpoint/internal/sqlite"
	"github.com/myrjola/checkpoint/internal/testhelpers"
)

func TestNewDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	version, err := db.UserVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, version)
	require.NoError(t, db.Healthy(ctx))

	_, err = db.ReadWrite.ExecContext(ctx,
		`INSERT INTO leaderboard (session_id, username, score, immigrants_processed, accuracy) VALUES (?, ?, ?, ?, ?)`,
		"s1", "anonymous", 25, 1, 100)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.ReadOnly.GetContext(ctx, &count, "SELECT COUNT(*) FROM leaderboard"))
	require.Equal(t, 1, count)

	_, err = db.ReadOnly.ExecContext(ctx, "DELETE FROM leaderboard")
	require.Error(t, err, "read-only pool must reject writes")
}

func TestNewDatabase_Reopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "checkpoint.sqlite")

	db, err := sqlite.NewDatabase(ctx, path, testhelpers.NewTestLogger(t))
	require.NoError(t, err)
	_, err = db.ReadWrite.ExecContext(ctx,
		`INSERT INTO session_blobs (session_id, kind, data) VALUES ('s1', 'state', '{}')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Migrations already applied are skipped and data survives.
	db, err = sqlite.NewDatabase(ctx, path, testhelpers.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	var count int
	require.NoError(t, db.ReadOnly.GetContext(ctx, &count, "SELECT COUNT(*) FROM session_blobs"))
	require.Equal(t, 1, count)
}

func TestRunOptimizer(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, db.RunOptimizer(ctx, 10*time.Millisecond))
}
