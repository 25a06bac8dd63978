package main

import (
	"net/http"

	"github.com/myrjola/checkpoint/internal/api"
	"github.com/myrjola/checkpoint/internal/errors"
)

// healthy responds with a JSON object indicating that the server and its game store are healthy.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Healthy(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "store health check"))
		return
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}
