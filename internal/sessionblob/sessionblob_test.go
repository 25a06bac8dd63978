package sessionblob_test

import (
	"testing"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/sessionblob"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	state := models.NewSessionState(models.ThemeAlien, models.DifficultyHard)
	state.Score = 45

	blob, err := sessionblob.Encode(state)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"version": 1,
		"data": {
			"theme": "alien",
			"difficulty": "hard",
			"score": 45,
			"immigrantsProcessed": 0,
			"correctDecisions": 0,
			"incorrectDecisions": 0,
			"currentStreak": 0,
			"highestStreak": 0,
			"gameOver": false
		}
	}`, string(blob))

	var decoded models.SessionState
	require.NoError(t, sessionblob.Decode(blob, &decoded))
	require.Equal(t, state, decoded)
}

func TestDecode_Errors(t *testing.T) {
	var state models.SessionState

	err := sessionblob.Decode([]byte(`{"version":2,"data":{}}`), &state)
	require.ErrorIs(t, err, sessionblob.ErrUnsupportedVersion)

	// Blobs written before versioning carry no envelope.
	err = sessionblob.Decode([]byte(`{"theme":"zombie","score":10}`), &state)
	require.ErrorIs(t, err, sessionblob.ErrUnsupportedVersion)

	err = sessionblob.Decode([]byte(`not json`), &state)
	require.Error(t, err)
}
