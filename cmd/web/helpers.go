package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/myrjola/checkpoint/internal/api"
	"github.com/myrjola/checkpoint/internal/errors"
	"github.com/myrjola/checkpoint/internal/game"
	"github.com/myrjola/checkpoint/internal/models"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON object from the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{
		Status:     "error",
		Kind:       api.KindInternal,
		Message:    http.StatusText(http.StatusInternalServerError),
		StatusCode: http.StatusInternalServerError,
	})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, kind string, msg string) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri), slog.String("kind", kind))
	writeJSON(w, status, api.ErrorResponse{
		Status:     "error",
		Kind:       kind,
		Message:    msg,
		StatusCode: status,
	})
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound, api.KindNotFound, "no such endpoint")
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.clientError(w, r, http.StatusBadRequest, api.KindBadRequest, err.Error())
}

// gameError answers with the error kind of a known game failure and falls back to a server error.
func (app *application) gameError(w http.ResponseWriter, r *http.Request, err error) {
	kinds := []struct {
		target error
		kind   string
	}{
		{models.ErrUnknownTheme, api.KindUnknownTheme},
		{models.ErrUnknownDifficulty, api.KindUnknownDifficulty},
		{models.ErrInvalidDecision, api.KindInvalidDecision},
		{game.ErrSessionNotFound, api.KindSessionNotFound},
		{game.ErrNoActiveApplicant, api.KindNoActiveApplicant},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			app.clientError(w, r, http.StatusBadRequest, k.kind, k.target.Error())
			return
		}
	}
	app.serverError(w, r, err)
}
