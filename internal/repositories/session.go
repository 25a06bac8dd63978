package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/sessionblob"
	"github.com/myrjola/checkpoint/internal/sqlite"
)

const (
	kindState     = "state"
	kindApplicant = "applicant"
)

// SessionRepository stores game sessions and the leaderboard in sqlite.
type SessionRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewSessionRepository(dbs *sqlite.Database, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		dbs:    dbs,
		logger: logger.With(slog.String("source", "SessionRepository")),
	}
}

func (r *SessionRepository) load(ctx context.Context, sessionID string, kind string, v any) error {
	var blob []byte
	stmt := `SELECT data FROM session_blobs WHERE session_id = ? AND kind = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &blob, stmt, sessionID, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "read session blob", slog.String("kind", kind))
	}
	if err = sessionblob.Decode(blob, v); err != nil {
		return errors.Wrap(err, "decode session blob", slog.String("kind", kind))
	}
	return nil
}

const upsertBlobStmt = `INSERT INTO session_blobs (session_id, kind, data)
VALUES (?, ?, ?)
ON CONFLICT (session_id, kind) DO UPDATE SET data       = excluded.data,
                                             updated_at = CURRENT_TIMESTAMP`

func upsertBlob(ctx context.Context, exec sqlx.ExecerContext, sessionID string, kind string, v any) error {
	blob, err := sessionblob.Encode(v)
	if err != nil {
		return errors.Wrap(err, "encode session blob", slog.String("kind", kind))
	}
	if _, err = exec.ExecContext(ctx, upsertBlobStmt, sessionID, kind, blob); err != nil {
		return errors.Wrap(err, "upsert session blob", slog.String("kind", kind))
	}
	return nil
}

func (r *SessionRepository) LoadState(ctx context.Context, sessionID string) (models.SessionState, error) {
	var state models.SessionState
	if err := r.load(ctx, sessionID, kindState, &state); err != nil {
		return models.SessionState{}, err
	}
	return state, nil
}

func (r *SessionRepository) SaveState(ctx context.Context, sessionID string, state models.SessionState) error {
	return upsertBlob(ctx, r.dbs.ReadWrite, sessionID, kindState, state)
}

func (r *SessionRepository) LoadApplicant(ctx context.Context, sessionID string) (models.Applicant, error) {
	var applicant models.Applicant
	if err := r.load(ctx, sessionID, kindApplicant, &applicant); err != nil {
		return models.Applicant{}, err
	}
	return applicant, nil
}

// SaveTurn writes the state and the pending applicant in one transaction.
func (r *SessionRepository) SaveTurn(
	ctx context.Context,
	sessionID string,
	state models.SessionState,
	applicant *models.Applicant,
) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err = upsertBlob(ctx, tx, sessionID, kindState, state); err != nil {
		return err
	}
	if applicant != nil {
		err = upsertBlob(ctx, tx, sessionID, kindApplicant, *applicant)
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM session_blobs WHERE session_id = ? AND kind = ?`,
			sessionID, kindApplicant)
		err = errors.Wrap(err, "delete applicant")
	}
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// RecordScore replaces the leaderboard entry of the session.
func (r *SessionRepository) RecordScore(ctx context.Context, entry models.LeaderboardEntry) error {
	stmt := `INSERT INTO leaderboard (session_id, username, score, immigrants_processed, accuracy)
VALUES (:session_id, :username, :score, :immigrants_processed, :accuracy)
ON CONFLICT (session_id) DO UPDATE SET username             = excluded.username,
                                       score                = excluded.score,
                                       immigrants_processed = excluded.immigrants_processed,
                                       accuracy             = excluded.accuracy,
                                       updated_at           = CURRENT_TIMESTAMP`
	if _, err := r.dbs.ReadWrite.NamedExecContext(ctx, stmt, entry); err != nil {
		return errors.Wrap(err, "upsert leaderboard entry", slog.Int("score", entry.Score))
	}
	return nil
}

// TopScores returns up to limit entries, best first. Equal scores rank the session with fewer decisions higher.
func (r *SessionRepository) TopScores(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries := []models.LeaderboardEntry{}
	stmt := `SELECT session_id, username, score, immigrants_processed, accuracy
FROM leaderboard
ORDER BY score DESC, immigrants_processed ASC, updated_at ASC
LIMIT ?`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &entries, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select top scores")
	}
	return entries, nil
}

// Healthy checks the database connections.
func (r *SessionRepository) Healthy(ctx context.Context) error {
	if err := r.dbs.Healthy(ctx); err != nil {
		return errors.Wrap(err, "database health")
	}
	return nil
}
