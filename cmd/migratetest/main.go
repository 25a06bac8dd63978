package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/sqlite"
	"github.com/myrjola/checkpoint/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("CHECKPOINT_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "CHECKPOINT_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	var version int
	if version, err = db.UserVersion(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error reading schema version", errors.SlogError(err))
		os.Exit(1)
	}
	if version == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no migrations applied, something is likely wrong")
		os.Exit(1)
	}

	// Count the stored rows as a simple smoke test of the migrated schema.
	var sessions, entries int
	if err = db.ReadOnly.GetContext(ctx, &sessions, `SELECT COUNT(DISTINCT session_id) FROM session_blobs`); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting sessions", errors.SlogError(err))
		os.Exit(1)
	}
	if err = db.ReadOnly.GetContext(ctx, &entries, `SELECT COUNT(*) FROM leaderboard`); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting leaderboard entries", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "row counts", slog.Int("user_version", version),
		slog.Int("sessions", sessions), slog.Int("leaderboard_entries", entries))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
