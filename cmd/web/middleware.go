package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/nosurf"

	"github.com/myrjola/checkpoint/internal/api"
	"github.com/myrjola/checkpoint/internal/contexthelpers"
	"github.com/myrjola/checkpoint/internal/logging"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start  = time.Now()
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)
		ctx := logging.WithAttrs(r.Context(), slog.String("request_id", uuid.NewString()))
		r = r.WithContext(ctx)

		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request",
			slog.String("proto", proto), slog.String("method", method), slog.String("uri", uri))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		app.logger.LogAttrs(ctx, slog.LevelDebug, "handled request",
			slog.Int("status", rec.status), slog.Duration("duration", time.Since(start)))
	})
}

// observe records the duration of the requests matched by pattern.
func (app *application) observe(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		app.metrics.ObserveRequest(pattern, rec.status, start)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err)) //nolint:err113 // panic value
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// gameSession assigns a game session id to the browser session on its first request and puts the id and the
// username into the request context.
func (app *application) gameSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := app.sessionManager.GetString(ctx, gameSessionIDKey)
		if sessionID == "" {
			sessionID = uuid.NewString()
			app.sessionManager.Put(ctx, gameSessionIDKey, sessionID)
		}
		r = contexthelpers.SetSession(r, sessionID, app.sessionManager.GetString(ctx, usernameKey))
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("session_id", sessionID)))

		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf. State-changing requests carry the
// token from init in the X-CSRF-Token header.
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{ //nolint:exhaustruct // only the security flags matter
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Status:     "error",
			Kind:       api.KindBadRequest,
			Message:    "missing or invalid CSRF token",
			StatusCode: http.StatusBadRequest,
		})
	}))

	return csrfHandler
}
