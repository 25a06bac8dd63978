package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/repositories"
	"github.com/myrjola/checkpoint/internal/sessionblob"
	"github.com/myrjola/checkpoint/internal/sqlite"
	"github.com/myrjola/checkpoint/internal/testhelpers"
)

// newTestRepository creates a repository on a fresh in-memory database.
func newTestRepository(t *testing.T) (*repositories.SessionRepository, *sqlite.Database) {
	t.Helper()
	logger := testhelpers.NewTestLogger(t)
	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	return repositories.NewSessionRepository(dbs, logger), dbs
}

func TestSessionRepository_State(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	_, err := repo.LoadState(ctx, "s1")
	require.ErrorIs(t, err, models.ErrNotFound)

	state := models.NewSessionState(models.ThemePandemic, models.DifficultyHard)
	require.NoError(t, repo.SaveState(ctx, "s1", state))

	state.Score = 85
	state.ImmigrantsProcessed = 2
	state.CorrectDecisions = 2
	state.CurrentStreak = 2
	state.HighestStreak = 2
	require.NoError(t, repo.SaveState(ctx, "s1", state))

	got, err := repo.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, state, got)

	_, err = repo.LoadState(ctx, "s2")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestSessionRepository_Applicant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	scan := "Non-human signature detected"
	applicant := models.Applicant{
		ID:         "1",
		Name:       "Quinn Garcia",
		Appearance: "Normal appearance but biometric data inconsistent",
		Document: models.Document{ //nolint:exhaustruct // alien document
			ID:          "DOC-A1B2C3D4E",
			Name:        "Quinn Garcia",
			Age:         41,
			Origin:      "District 9",
			Destination: "Research Station",
			Reason:      "Research mission",
			IssueDate:   "2024-01-20",
			ExpiryDate:  "2024-06-01",
			ScanResult:  &scan,
			Profession:  "Scientist",
		},
		IsValid:    false,
		Violations: []string{"Scanner detected non-human biological markers"},
		RiskLevel:  models.RiskHigh,
		Story:      "Quinn Garcia appeared in District 9 only recently. No prior records found.",
	}
	state := models.NewSessionState(models.ThemeAlien, models.DifficultyMedium)
	require.NoError(t, repo.SaveTurn(ctx, "s1", state, &applicant))

	got, err := repo.LoadApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, applicant, got)
	gotState, err := repo.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, state, gotState)

	state.ImmigrantsProcessed = 1
	state.IncorrectDecisions = 1
	state.GameOver = true
	require.NoError(t, repo.SaveTurn(ctx, "s1", state, nil))
	_, err = repo.LoadApplicant(ctx, "s1")
	require.ErrorIs(t, err, models.ErrNotFound)
	gotState, err = repo.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, state, gotState)
}

func TestSessionRepository_TurnIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, dbs := newTestRepository(t)

	first := models.Applicant{ID: "1", Name: "Ada", Violations: []string{}} //nolint:exhaustruct // only identity matters
	state := models.NewSessionState(models.ThemeZombie, models.DifficultyEasy)
	require.NoError(t, repo.SaveTurn(ctx, "s1", state, &first))

	_, err := dbs.ReadWrite.ExecContext(ctx, `CREATE TRIGGER reject_applicant BEFORE UPDATE ON session_blobs
WHEN NEW.kind = 'applicant'
BEGIN
    SELECT RAISE(ABORT, 'applicant rejected');
END`)
	require.NoError(t, err)

	next := state
	next.ImmigrantsProcessed = 1
	second := models.Applicant{ID: "2", Name: "Bo", Violations: []string{}} //nolint:exhaustruct // only identity matters
	require.Error(t, repo.SaveTurn(ctx, "s1", next, &second))

	// The state write was rolled back together with the failed applicant write.
	gotState, err := repo.LoadState(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, state, gotState)
	gotApplicant, err := repo.LoadApplicant(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "1", gotApplicant.ID)
}

func TestSessionRepository_UnsupportedVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, dbs := newTestRepository(t)

	_, err := dbs.ReadWrite.ExecContext(ctx,
		`INSERT INTO session_blobs (session_id, kind, data) VALUES ('s1', 'state', '{"version":0,"data":{}}')`)
	require.NoError(t, err)

	_, err = repo.LoadState(ctx, "s1")
	require.ErrorIs(t, err, sessionblob.ErrUnsupportedVersion)
}

func TestSessionRepository_Leaderboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	empty, err := repo.TopScores(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, empty)

	for _, e := range []models.LeaderboardEntry{
		{SessionID: "a", Username: "ana", Score: 100, ImmigrantsProcessed: 5, Accuracy: 80},
		{SessionID: "b", Username: "bo", Score: 100, ImmigrantsProcessed: 4, Accuracy: 100},
		{SessionID: "c", Username: "cy", Score: 30, ImmigrantsProcessed: 2, Accuracy: 50},
		{SessionID: "c", Username: "cyan", Score: 300, ImmigrantsProcessed: 9, Accuracy: 89},
	} {
		require.NoError(t, repo.RecordScore(ctx, e))
	}

	top, err := repo.TopScores(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []models.LeaderboardEntry{
		{SessionID: "c", Username: "cyan", Score: 300, ImmigrantsProcessed: 9, Accuracy: 89},
		{SessionID: "b", Username: "bo", Score: 100, ImmigrantsProcessed: 4, Accuracy: 100},
		{SessionID: "a", Username: "ana", Score: 100, ImmigrantsProcessed: 5, Accuracy: 80},
	}, top)

	top, err = repo.TopScores(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
}
