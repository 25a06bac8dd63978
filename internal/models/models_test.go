package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/checkpoint/internal/models"
)

func TestParse(t *testing.T) {
	theme, err := models.ParseTheme("alien")
	require.NoError(t, err)
	require.Equal(t, models.ThemeAlien, theme)
	_, err = models.ParseTheme("vampire")
	require.ErrorIs(t, err, models.ErrUnknownTheme)

	difficulty, err := models.ParseDifficulty("hard")
	require.NoError(t, err)
	require.Equal(t, models.DifficultyHard, difficulty)
	_, err = models.ParseDifficulty("nightmare")
	require.ErrorIs(t, err, models.ErrUnknownDifficulty)

	decision, err := models.ParseDecision("reject")
	require.NoError(t, err)
	require.Equal(t, models.DecisionReject, decision)
	_, err = models.ParseDecision("detain")
	require.ErrorIs(t, err, models.ErrInvalidDecision)
	_, err = models.ParseDecision("")
	require.ErrorIs(t, err, models.ErrInvalidDecision)
}

func TestDocumentOmitsAbsentFields(t *testing.T) {
	scan := "Human DNA confirmed"
	doc := models.Document{ //nolint:exhaustruct // alien document
		ID:         "DOC-ABC",
		Name:       "Alex Smith",
		ScanResult: &scan,
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))
	require.NotContains(t, fields, "temperature")
	require.NotContains(t, fields, "bloodType")
	require.NotContains(t, fields, "vaccinationStatus")
	require.Equal(t, scan, fields["scanResult"])
	require.NotContains(t, fields, "symptoms")
}

func TestDocumentKeepsEmptySymptoms(t *testing.T) {
	symptoms := []string{}
	doc := models.Document{ //nolint:exhaustruct // pandemic document
		ID:       "DOC-ABC",
		Name:     "Alex Smith",
		Symptoms: &symptoms,
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(out), `"symptoms":[]`)
}

func TestAccuracy(t *testing.T) {
	state := models.DefaultSessionState()
	require.Zero(t, state.Accuracy())
	state.ImmigrantsProcessed = 3
	state.CorrectDecisions = 2
	state.IncorrectDecisions = 1
	require.Equal(t, 67, state.Accuracy())
}
