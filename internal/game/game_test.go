package game_test

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/game"
	"github.com/myrjola/checkpoint/internal/generator"
	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/random"
	"github.com/myrjola/checkpoint/internal/testhelpers"
)

type memoryStore struct {
	mu          sync.Mutex
	states      map[string]models.SessionState
	applicants  map[string]models.Applicant
	leaderboard map[string]models.LeaderboardEntry
	failTurns   bool
}

var errTurnFailed = errors.NewSentinel("turn not saved")

func newMemoryStore() *memoryStore {
	return &memoryStore{
		mu:          sync.Mutex{},
		states:      map[string]models.SessionState{},
		applicants:  map[string]models.Applicant{},
		leaderboard: map[string]models.LeaderboardEntry{},
		failTurns:   false,
	}
}

func (m *memoryStore) LoadState(_ context.Context, sessionID string) (models.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[sessionID]
	if !ok {
		return models.SessionState{}, models.ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) SaveState(_ context.Context, sessionID string, state models.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = state
	return nil
}

func (m *memoryStore) LoadApplicant(_ context.Context, sessionID string) (models.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applicants[sessionID]
	if !ok {
		return models.Applicant{}, models.ErrNotFound
	}
	return a, nil
}

func (m *memoryStore) SaveTurn(
	_ context.Context,
	sessionID string,
	state models.SessionState,
	applicant *models.Applicant,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTurns {
		return errTurnFailed
	}
	m.states[sessionID] = state
	if applicant != nil {
		m.applicants[sessionID] = *applicant
	} else {
		delete(m.applicants, sessionID)
	}
	return nil
}

func (m *memoryStore) dropApplicant(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.applicants, sessionID)
}

func (m *memoryStore) setFailTurns(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failTurns = fail
}

func (m *memoryStore) RecordScore(_ context.Context, entry models.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboard[entry.SessionID] = entry
	return nil
}

func (m *memoryStore) TopScores(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]models.LeaderboardEntry, 0, len(m.leaderboard))
	for _, e := range m.leaderboard {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries[:min(limit, len(entries))], nil
}

type countingObserver struct {
	mu        sync.Mutex
	generated int
	scored    int
	points    int
}

func (o *countingObserver) ApplicantGenerated(models.Theme, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generated++
}

func (o *countingObserver) DecisionScored(_ models.Theme, _ bool, points int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scored++
	o.points += points
}

// newService plays with applicants that are always legitimate.
func newService(t *testing.T, opts ...game.Option) (*game.Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	gen := generator.New(random.Constant(0.9))
	return game.NewService(store, gen, testhelpers.NewTestLogger(t), opts...), store
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	got, err := svc.Init(ctx, "s1", "")
	require.NoError(t, err)
	require.Equal(t, models.DefaultSessionState(), got.State)
	require.Equal(t, game.AnonymousUsername, got.Username)
	require.Len(t, got.Themes, len(models.Themes))

	_, err = store.LoadState(ctx, "s1")
	require.ErrorIs(t, err, models.ErrNotFound, "init must not persist the default state")

	_, err = svc.ChangeTheme(ctx, "s1", "alien")
	require.ErrorIs(t, err, game.ErrSessionNotFound)
	_, err = svc.Process(ctx, "s1", "", "approve")
	require.ErrorIs(t, err, game.ErrSessionNotFound)

	_, err = svc.Start(ctx, "s1", "pandemic", "hard")
	require.NoError(t, err)
	got, err = svc.Init(ctx, "s1", "inspector")
	require.NoError(t, err)
	require.Equal(t, models.ThemePandemic, got.State.Theme)
	require.Equal(t, "inspector", got.Username)
}

func TestStart(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	got, err := svc.Start(ctx, "s1", "", "")
	require.NoError(t, err)
	require.Equal(t, models.NewSessionState(models.ThemeZombie, models.DifficultyMedium), got.State)
	require.Equal(t, "1", got.Applicant.ID)
	require.NotNil(t, got.Applicant.Document.Temperature)

	stored, err := store.LoadApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, got.Applicant, stored)

	_, err = svc.Start(ctx, "s1", "werewolf", "")
	require.ErrorIs(t, err, models.ErrUnknownTheme)
	_, err = svc.Start(ctx, "s1", "alien", "nightmare")
	require.ErrorIs(t, err, models.ErrUnknownDifficulty)
}

func TestProcess(t *testing.T) {
	ctx := context.Background()
	observer := &countingObserver{} //nolint:exhaustruct // zero value
	svc, store := newService(t, game.WithObserver(observer))

	started, err := svc.Start(ctx, "s1", "nuclear", "hard")
	require.NoError(t, err)

	got, err := svc.Process(ctx, "s1", "inspector", "approve")
	require.NoError(t, err)
	require.True(t, got.Correct)
	require.Equal(t, 25, got.Points)
	require.Equal(t, 1, got.State.ImmigrantsProcessed)
	require.Equal(t, 1, got.State.CurrentStreak)
	require.Contains(t, got.Feedback, started.Applicant.Name)
	require.NotNil(t, got.NextApplicant)
	require.Equal(t, "2", got.NextApplicant.ID)

	got, err = svc.Process(ctx, "s1", "inspector", "reject")
	require.NoError(t, err)
	require.False(t, got.Correct)
	require.Zero(t, got.Points)
	require.Equal(t, 0, got.State.CurrentStreak)
	require.Equal(t, 1, got.State.HighestStreak)
	require.Equal(t, "3", got.NextApplicant.ID)

	top, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.LeaderboardEntry{{
		SessionID:           "s1",
		Username:            "inspector",
		Score:               25,
		ImmigrantsProcessed: 2,
		Accuracy:            50,
	}}, top)

	state, err := store.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, got.State, state)

	require.Equal(t, 3, observer.generated)
	require.Equal(t, 2, observer.scored)
	require.Equal(t, 25, observer.points)

	_, err = svc.Process(ctx, "s1", "", "maybe")
	require.ErrorIs(t, err, models.ErrInvalidDecision)
}

func TestProcess_NoActiveApplicant(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	_, err := svc.Start(ctx, "s1", "alien", "easy")
	require.NoError(t, err)
	store.dropApplicant("s1")

	_, err = svc.Process(ctx, "s1", "", "approve")
	require.ErrorIs(t, err, game.ErrNoActiveApplicant)
}

func TestProcess_FailedSaveKeepsTurn(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	start, err := svc.Start(ctx, "s1", "pandemic", "medium")
	require.NoError(t, err)

	store.setFailTurns(true)
	_, err = svc.Process(ctx, "s1", "", "approve")
	require.ErrorIs(t, err, errTurnFailed)

	// Neither the state nor the pending applicant moved, so the decision can be retried.
	state, err := store.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, start.State, state)
	pending, err := store.LoadApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, start.Applicant, pending)

	store.setFailTurns(false)
	res, err := svc.Process(ctx, "s1", "", "approve")
	require.NoError(t, err)
	require.Equal(t, 1, res.State.ImmigrantsProcessed)
}

func TestProcess_GameLength(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, game.WithGameLength(2))

	_, err := svc.Start(ctx, "s1", "zombie", "medium")
	require.NoError(t, err)

	got, err := svc.Process(ctx, "s1", "", "approve")
	require.NoError(t, err)
	require.False(t, got.State.GameOver)
	require.NotNil(t, got.NextApplicant)

	got, err = svc.Process(ctx, "s1", "", "approve")
	require.NoError(t, err)
	require.True(t, got.State.GameOver)
	require.Nil(t, got.NextApplicant)
	require.NotEmpty(t, got.Feedback)

	_, err = svc.Process(ctx, "s1", "", "approve")
	require.ErrorIs(t, err, game.ErrNoActiveApplicant)
}

func TestChangeTheme_KeepsPendingApplicant(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	started, err := svc.Start(ctx, "s1", "zombie", "medium")
	require.NoError(t, err)

	state, err := svc.ChangeTheme(ctx, "s1", "alien")
	require.NoError(t, err)
	require.Equal(t, models.ThemeAlien, state.Theme)
	require.Equal(t, started.State.Score, state.Score)

	pending, err := store.LoadApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, started.Applicant, pending)
	require.NotNil(t, pending.Document.Temperature)
	require.Nil(t, pending.Document.ScanResult)

	got, err := svc.Process(ctx, "s1", "", "approve")
	require.NoError(t, err)
	require.Nil(t, got.NextApplicant.Document.Temperature)
	require.NotNil(t, got.NextApplicant.Document.ScanResult)

	_, err = svc.ChangeTheme(ctx, "s1", "werewolf")
	require.ErrorIs(t, err, models.ErrUnknownTheme)
}

func TestProcess_ConcurrentDecisions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Start(ctx, "s1", "pandemic", "easy")
	require.NoError(t, err)

	const decisions = 25
	var wg sync.WaitGroup
	for range decisions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, processErr := svc.Process(ctx, "s1", "", "approve")
			assert.NoError(t, processErr)
		}()
	}
	wg.Wait()

	got, err := svc.Init(ctx, "s1", "")
	require.NoError(t, err)
	require.Equal(t, decisions, got.State.ImmigrantsProcessed)
	require.Equal(t, decisions, got.State.HighestStreak)
}
