package main

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/myrjola/checkpoint/internal/api"
	"github.com/myrjola/checkpoint/internal/contexthelpers"
	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/themes"
)

const maxUsernameLength = 32

// initGame returns the state of the browser's game session together with the CSRF token for the POST endpoints.
func (app *application) initGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := app.game.Init(ctx, contexthelpers.SessionID(ctx), contexthelpers.Username(ctx))
	if err != nil {
		app.gameError(w, r, errors.Wrap(err, "init game"))
		return
	}
	writeJSON(w, http.StatusOK, api.InitResponse{
		SessionState: res.State,
		Username:     res.Username,
		ThemeCatalog: res.Themes,
		CSRFToken:    contexthelpers.CSRFToken(ctx),
	})
}

func (app *application) startGame(w http.ResponseWriter, r *http.Request) {
	var req api.StartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}
	ctx := r.Context()
	res, err := app.game.Start(ctx, contexthelpers.SessionID(ctx), req.Theme, req.Difficulty)
	if err != nil {
		app.gameError(w, r, errors.Wrap(err, "start game"))
		return
	}
	writeJSON(w, http.StatusOK, api.StartResponse{
		SessionState:     res.State,
		CurrentApplicant: res.Applicant,
	})
}

func (app *application) processDecision(w http.ResponseWriter, r *http.Request) {
	var req api.ProcessRequest
	if err := decodeJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}
	ctx := r.Context()
	res, err := app.game.Process(ctx, contexthelpers.SessionID(ctx), contexthelpers.Username(ctx), req.Decision)
	if err != nil {
		app.gameError(w, r, errors.Wrap(err, "process decision"))
		return
	}
	writeJSON(w, http.StatusOK, api.ProcessResponse{
		Correct:         res.Correct,
		SessionState:    res.State,
		NextApplicant:   res.NextApplicant,
		FeedbackMessage: res.Feedback,
		PointsAwarded:   res.Points,
	})
}

func (app *application) changeTheme(w http.ResponseWriter, r *http.Request) {
	var req api.ChangeThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}
	ctx := r.Context()
	state, err := app.game.ChangeTheme(ctx, contexthelpers.SessionID(ctx), req.Theme)
	if err != nil {
		app.gameError(w, r, errors.Wrap(err, "change theme"))
		return
	}
	writeJSON(w, http.StatusOK, api.ChangeThemeResponse{SessionState: state})
}

// setUsername stores the name shown on the leaderboard in the browser session. Only later decisions use it.
func (app *application) setUsername(w http.ResponseWriter, r *http.Request) {
	var req api.UsernameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		app.badRequest(w, r, err)
		return
	}
	username := strings.TrimSpace(req.Username)
	if n := utf8.RuneCountInString(username); n == 0 || n > maxUsernameLength {
		app.clientError(w, r, http.StatusBadRequest, api.KindBadRequest, "username must be 1 to 32 characters")
		return
	}
	ctx := r.Context()
	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(ctx, usernameKey, username)
	app.logger.LogAttrs(ctx, slog.LevelInfo, "username changed", slog.String("username", username))
	writeJSON(w, http.StatusOK, api.UsernameResponse{Username: username})
}

func (app *application) leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := app.game.Leaderboard(r.Context())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "leaderboard"))
		return
	}
	writeJSON(w, http.StatusOK, api.LeaderboardResponse{Entries: entries})
}

func (app *application) themes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.ThemesResponse{Themes: themes.List()})
}
