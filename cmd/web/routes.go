package main

import (
	"log/slog"
	"net/http"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.gameSession)

	handle := func(pattern string, chain alice.Chain, h http.HandlerFunc) {
		mux.Handle(pattern, app.observe(pattern, chain.ThenFunc(h)))
	}

	handle("GET /api/healthy", alice.New(), app.healthy)
	handle("GET /api/themes", alice.New(), app.themes)
	handle("GET /api/leaderboard", alice.New(), app.leaderboard)

	handle("GET /api/init", session, app.initGame)
	handle("POST /api/start", session, app.startGame)
	handle("POST /api/process", session, app.processDecision)
	handle("POST /api/change-theme", session, app.changeTheme)
	handle("POST /api/username", session, app.setUsername)

	mux.Handle("GET /metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{ //nolint:exhaustruct // defaults
		ErrorLog: slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}))

	mux.Handle("/", app.observe("/", http.HandlerFunc(app.notFound)))

	return app.recoverPanic(app.logRequest(secureHeaders(timeoutHandler(mux, defaultTimeout))))
}
