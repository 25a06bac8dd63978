// Package game runs checkpoint sessions: it starts games, judges decisions, and keeps the session state and the
// pending applicant in a Store between requests.
//
// The scorer, generator and feedback composer are pure. Service owns the read-modify-write cycle around them and
// serialises it per session id within one process. Two processes sharing a store can still interleave; the last
// write wins.
package game

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/feedback"
	"github.com/myrjola/checkpoint/internal/generator"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/scoring"
	"github.com/myrjola/checkpoint/internal/themes"
)

var (
	ErrSessionNotFound   = errors.NewSentinel("session not found")
	ErrNoActiveApplicant = errors.NewSentinel("no active applicant")
)

// AnonymousUsername is shown for players who never picked a name.
const AnonymousUsername = "anonymous"

// LeaderboardSize is the number of entries Leaderboard returns.
const LeaderboardSize = 10

// Store persists the two blobs of a session and the leaderboard. Loads return models.ErrNotFound when nothing is
// stored.
type Store interface {
	LoadState(ctx context.Context, sessionID string) (models.SessionState, error)
	SaveState(ctx context.Context, sessionID string, state models.SessionState) error
	LoadApplicant(ctx context.Context, sessionID string) (models.Applicant, error)
	// SaveTurn writes state and the pending applicant atomically. A nil applicant clears the pending one.
	SaveTurn(ctx context.Context, sessionID string, state models.SessionState, applicant *models.Applicant) error
	RecordScore(ctx context.Context, entry models.LeaderboardEntry) error
	TopScores(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// Observer is notified about generated applicants and judged decisions.
type Observer interface {
	ApplicantGenerated(theme models.Theme, valid bool)
	DecisionScored(theme models.Theme, correct bool, points int)
}

type nopObserver struct{}

func (nopObserver) ApplicantGenerated(models.Theme, bool)  {}
func (nopObserver) DecisionScored(models.Theme, bool, int) {}

type Service struct {
	store      Store
	generator  *generator.Generator
	observer   Observer
	logger     *slog.Logger
	gameLength int
	locks      *keyedMutex
}

type Option func(*Service)

// WithObserver registers o for generation and decision events.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// WithGameLength ends the game after n decisions. Zero means endless play.
func WithGameLength(n int) Option {
	return func(s *Service) {
		s.gameLength = n
	}
}

func NewService(store Store, gen *generator.Generator, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:      store,
		generator:  gen,
		observer:   nopObserver{},
		logger:     logger,
		gameLength: 0,
		locks:      newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type InitResult struct {
	State    models.SessionState
	Username string
	Themes   map[models.Theme]themes.Definition
}

// Init returns the stored state of the session or the default state when there is none. The default is not
// persisted, so a game still has to be started before decisions are accepted.
func (s *Service) Init(ctx context.Context, sessionID string, username string) (InitResult, error) {
	state, err := s.store.LoadState(ctx, sessionID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		state = models.DefaultSessionState()
	case err != nil:
		return InitResult{}, errors.Wrap(err, "load state")
	}
	if username == "" {
		username = AnonymousUsername
	}
	return InitResult{
		State:    state,
		Username: username,
		Themes:   themes.List(),
	}, nil
}

type StartResult struct {
	State     models.SessionState
	Applicant models.Applicant
}

// Start resets the session and generates the first applicant. An empty theme defaults to zombie and an empty
// difficulty to medium.
func (s *Service) Start(ctx context.Context, sessionID string, theme string, difficulty string) (StartResult, error) {
	if theme == "" {
		theme = string(models.ThemeZombie)
	}
	if difficulty == "" {
		difficulty = string(models.DifficultyMedium)
	}
	t, err := models.ParseTheme(theme)
	if err != nil {
		return StartResult{}, errors.Wrap(err, "start game")
	}
	d, err := models.ParseDifficulty(difficulty)
	if err != nil {
		return StartResult{}, errors.Wrap(err, "start game")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state := models.NewSessionState(t, d)
	applicant, err := s.generate(state, "1")
	if err != nil {
		return StartResult{}, err
	}
	if err = s.store.SaveTurn(ctx, sessionID, state, &applicant); err != nil {
		return StartResult{}, errors.Wrap(err, "save turn")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "game started",
		slog.String("theme", string(t)), slog.String("difficulty", string(d)))

	return StartResult{
		State:     state,
		Applicant: applicant,
	}, nil
}

type ProcessResult struct {
	Correct       bool
	State         models.SessionState
	NextApplicant *models.Applicant
	Feedback      string
	Points        int
}

// Process judges decision on the pending applicant, generates the next one and records the new standing on the
// leaderboard.
func (s *Service) Process(
	ctx context.Context,
	sessionID string,
	username string,
	decision string,
) (ProcessResult, error) {
	dec, err := models.ParseDecision(decision)
	if err != nil {
		return ProcessResult{}, errors.Wrap(err, "process decision")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return ProcessResult{}, err
	}
	current, err := s.store.LoadApplicant(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return ProcessResult{}, errors.Wrap(ErrNoActiveApplicant, "process decision")
	}
	if err != nil {
		return ProcessResult{}, errors.Wrap(err, "load applicant")
	}

	result, err := scoring.Score(dec, current.IsValid, current.RiskLevel, state)
	if err != nil {
		return ProcessResult{}, errors.Wrap(err, "score decision")
	}
	state = result.State

	var next *models.Applicant
	if s.gameLength > 0 && state.ImmigrantsProcessed >= s.gameLength {
		state.GameOver = true
	} else {
		applicant, genErr := s.generate(state, strconv.Itoa(state.ImmigrantsProcessed+1))
		if genErr != nil {
			return ProcessResult{}, genErr
		}
		next = &applicant
	}
	message := feedback.Compose(result.Correct, current, dec)

	if err = s.store.SaveTurn(ctx, sessionID, state, next); err != nil {
		return ProcessResult{}, errors.Wrap(err, "save turn")
	}

	if username == "" {
		username = AnonymousUsername
	}
	entry := models.LeaderboardEntry{
		SessionID:           sessionID,
		Username:            username,
		Score:               state.Score,
		ImmigrantsProcessed: state.ImmigrantsProcessed,
		Accuracy:            state.Accuracy(),
	}
	if err = s.store.RecordScore(ctx, entry); err != nil {
		// The decision stands even when the leaderboard lags behind.
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to record score", errors.SlogError(err))
	}

	s.observer.DecisionScored(state.Theme, result.Correct, result.Points)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "decision processed",
		slog.String("decision", string(dec)),
		slog.Bool("correct", result.Correct),
		slog.Int("points", result.Points),
		slog.Bool("game_over", state.GameOver))

	return ProcessResult{
		Correct:       result.Correct,
		State:         state,
		NextApplicant: next,
		Feedback:      message,
		Points:        result.Points,
	}, nil
}

// ChangeTheme switches the theme of a running session. The pending applicant is kept as is and only the
// applicants generated afterwards use the new theme.
func (s *Service) ChangeTheme(ctx context.Context, sessionID string, theme string) (models.SessionState, error) {
	t, err := models.ParseTheme(theme)
	if err != nil {
		return models.SessionState{}, errors.Wrap(err, "change theme")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return models.SessionState{}, err
	}
	state.Theme = t
	if err = s.store.SaveState(ctx, sessionID, state); err != nil {
		return models.SessionState{}, errors.Wrap(err, "save state")
	}
	return state, nil
}

// Leaderboard returns the best sessions by score.
func (s *Service) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	entries, err := s.store.TopScores(ctx, LeaderboardSize)
	if err != nil {
		return nil, errors.Wrap(err, "top scores")
	}
	return entries, nil
}

func (s *Service) loadState(ctx context.Context, sessionID string) (models.SessionState, error) {
	state, err := s.store.LoadState(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return models.SessionState{}, errors.Wrap(ErrSessionNotFound, "load state")
	}
	if err != nil {
		return models.SessionState{}, errors.Wrap(err, "load state")
	}
	return state, nil
}

func (s *Service) generate(state models.SessionState, id string) (models.Applicant, error) {
	applicant, err := s.generator.Generate(state.Theme, state.Difficulty, id)
	if err != nil {
		return models.Applicant{}, errors.Wrap(err, "generate applicant", slog.String("id", id))
	}
	s.observer.ApplicantGenerated(state.Theme, applicant.IsValid)
	return applicant, nil
}
