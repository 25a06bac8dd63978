package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/myrjola/checkpoint/internal/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrate applies the embedded migrations newer than PRAGMA user_version, each in its own transaction. The files
// are applied in lexical order and the version after a file is its position in that order.
func (db *Database) migrate(ctx context.Context) error {
	var (
		err     error
		current int
	)
	if err = db.ReadWrite.GetContext(ctx, &current, "PRAGMA user_version"); err != nil {
		return errors.Wrap(err, "read user version")
	}

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return errors.Wrap(err, "list migrations")
	}
	sort.Strings(names)

	if current > len(names) {
		return errors.New("database is newer than the binary",
			slog.Int("user_version", current), slog.Int("migrations", len(names)))
	}

	for i, name := range names[current:] {
		version := current + i + 1
		if err = db.applyMigration(ctx, name, version); err != nil {
			return errors.Wrap(err, "apply migration", slog.String("name", name))
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "applied migration",
			slog.String("name", name), slog.Int("user_version", version))
	}
	return nil
}

func (db *Database) applyMigration(ctx context.Context, name string, version int) error {
	script, err := migrations.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read migration")
	}

	var tx *sqlx.Tx
	if tx, err = db.ReadWrite.BeginTxx(ctx, nil); err != nil {
		return errors.Wrap(err, "start transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, string(script)); err != nil {
		return errors.Wrap(err, "execute migration")
	}
	// PRAGMA does not accept bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return errors.Wrap(err, "set user version")
	}
	if _, err = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); err != nil {
		return errors.Wrap(err, "foreign key check")
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// UserVersion reports the schema version of the database.
func (db *Database) UserVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.ReadOnly.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, errors.Wrap(err, "read user version")
	}
	return version, nil
}
