// Package api defines the JSON bodies of the checkpoint HTTP API.
package api

import (
	"fmt"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/themes"
)

// CSRFHeader carries the token returned by init on every state-changing request.
const CSRFHeader = "X-CSRF-Token"

// Error kinds reported in ErrorResponse.Kind.
const (
	KindUnknownTheme      = "unknown_theme"
	KindUnknownDifficulty = "unknown_difficulty"
	KindInvalidDecision   = "invalid_decision"
	KindSessionNotFound   = "session_not_found"
	KindNoActiveApplicant = "no_active_applicant"
	KindBadRequest        = "bad_request"
	KindNotFound          = "not_found"
	KindTimeout           = "timeout"
	KindInternal          = "internal"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// StatusCode is the HTTP status the error arrived with.
	StatusCode int `json:"-"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

type HealthResponse struct {
	Status string `json:"status"`
}

type InitResponse struct {
	SessionState models.SessionState                `json:"sessionState"`
	Username     string                             `json:"username"`
	ThemeCatalog map[models.Theme]themes.Definition `json:"themeCatalog"`
	CSRFToken    string                             `json:"csrfToken"`
}

type StartRequest struct {
	Theme      string `json:"theme"`
	Difficulty string `json:"difficulty"`
}

type StartResponse struct {
	SessionState     models.SessionState `json:"sessionState"`
	CurrentApplicant models.Applicant    `json:"currentApplicant"`
}

type ProcessRequest struct {
	Decision string `json:"decision"`
}

type ProcessResponse struct {
	Correct         bool                `json:"correct"`
	SessionState    models.SessionState `json:"sessionState"`
	NextApplicant   *models.Applicant   `json:"nextApplicant"`
	FeedbackMessage string              `json:"feedbackMessage"`
	PointsAwarded   int                 `json:"pointsAwarded"`
}

type ChangeThemeRequest struct {
	Theme string `json:"theme"`
}

type ChangeThemeResponse struct {
	SessionState models.SessionState `json:"sessionState"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}

type UsernameResponse struct {
	Username string `json:"username"`
}

type LeaderboardResponse struct {
	Entries []models.LeaderboardEntry `json:"entries"`
}

type ThemesResponse struct {
	Themes map[models.Theme]themes.Definition `json:"themes"`
}
