// Package redisstore keeps game sessions and the leaderboard in Redis.
//
// Each session owns two string keys holding versioned blobs, game:<id> and applicant:<id>, which expire together
// with the browser session. The leaderboard is a sorted set ranking session ids plus a hash with the entries.
package redisstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/sessionblob"
)

const (
	stateKeyPrefix     = "game:"
	applicantKeyPrefix = "applicant:"
	leaderboardKey     = "leaderboard"
	entriesKey         = "leaderboard:entries"

	// processedWeight orders equal scores by fewest decisions. Scores stay well below 2^53/processedWeight.
	processedWeight = 1_000_000
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Connect parses url, for example redis://localhost:6379/0, and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis", slog.String("addr", opts.Addr))
	}
	return client, nil
}

// New creates a Store whose session keys live for ttl after their last write.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("source", "redisstore")),
	}
}

func (s *Store) load(ctx context.Context, key string, v any) error {
	blob, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get", slog.String("key", key))
	}
	if err = sessionblob.Decode(blob, v); err != nil {
		return errors.Wrap(err, "decode", slog.String("key", key))
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	blob, err := sessionblob.Encode(v)
	if err != nil {
		return errors.Wrap(err, "encode", slog.String("key", key))
	}
	if err = s.client.Set(ctx, key, blob, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "set", slog.String("key", key))
	}
	return nil
}

func (s *Store) LoadState(ctx context.Context, sessionID string) (models.SessionState, error) {
	var state models.SessionState
	if err := s.load(ctx, stateKeyPrefix+sessionID, &state); err != nil {
		return models.SessionState{}, err
	}
	return state, nil
}

func (s *Store) SaveState(ctx context.Context, sessionID string, state models.SessionState) error {
	return s.save(ctx, stateKeyPrefix+sessionID, state)
}

func (s *Store) LoadApplicant(ctx context.Context, sessionID string) (models.Applicant, error) {
	var applicant models.Applicant
	if err := s.load(ctx, applicantKeyPrefix+sessionID, &applicant); err != nil {
		return models.Applicant{}, err
	}
	return applicant, nil
}

// SaveTurn writes the state and the pending applicant in one MULTI/EXEC transaction.
func (s *Store) SaveTurn(
	ctx context.Context,
	sessionID string,
	state models.SessionState,
	applicant *models.Applicant,
) error {
	stateBlob, err := sessionblob.Encode(state)
	if err != nil {
		return errors.Wrap(err, "encode state")
	}
	var applicantBlob []byte
	if applicant != nil {
		if applicantBlob, err = sessionblob.Encode(*applicant); err != nil {
			return errors.Wrap(err, "encode applicant")
		}
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, stateKeyPrefix+sessionID, stateBlob, s.ttl)
	if applicant != nil {
		pipe.Set(ctx, applicantKeyPrefix+sessionID, applicantBlob, s.ttl)
	} else {
		pipe.Del(ctx, applicantKeyPrefix+sessionID)
	}
	if _, err = pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "save turn")
	}
	return nil
}

// RecordScore replaces the leaderboard entry of the session.
func (s *Store) RecordScore(ctx context.Context, entry models.LeaderboardEntry) error {
	blob, err := sessionblob.Encode(entry)
	if err != nil {
		return errors.Wrap(err, "encode leaderboard entry")
	}
	rank := float64(entry.Score)*processedWeight - float64(entry.ImmigrantsProcessed)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: rank, Member: entry.SessionID})
	pipe.HSet(ctx, entriesKey, entry.SessionID, blob)
	if _, err = pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "record score", slog.Int("score", entry.Score))
	}
	return nil
}

// TopScores returns up to limit entries, best first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	ids, err := s.client.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "rank sessions")
	}
	entries := make([]models.LeaderboardEntry, 0, len(ids))
	if len(ids) == 0 {
		return entries, nil
	}

	blobs, err := s.client.HMGet(ctx, entriesKey, ids...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read leaderboard entries")
	}
	for i, raw := range blobs {
		blob, ok := raw.(string)
		if !ok {
			// Ranked without an entry.
			s.logger.LogAttrs(ctx, slog.LevelWarn, "leaderboard entry missing", slog.Int("rank", i+1))
			continue
		}
		var entry models.LeaderboardEntry
		if err = sessionblob.Decode([]byte(blob), &entry); err != nil {
			return nil, errors.Wrap(err, "decode leaderboard entry")
		}
		entry.SessionID = ids[i]
		entries = append(entries, entry)
	}
	return entries, nil
}

// Healthy pings the server.
func (s *Store) Healthy(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "ping redis")
	}
	return nil
}
