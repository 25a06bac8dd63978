package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/checkpoint/internal/errors"
)

// RunOptimizer runs optimize once per interval until ctx is done.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) RunOptimizer(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			db.optimize(ctx)
		}
	}
}

func (db *Database) optimize(ctx context.Context) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		if ctx.Err() != nil {
			return
		}
		err = errors.Wrap(err, "optimize database")
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", errors.SlogError(err))
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelInfo, "optimized database", slog.Duration("duration", time.Since(start)))
}
