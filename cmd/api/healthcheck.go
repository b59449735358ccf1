// cmd/api/healthcheck.go
package main

import (
	"context"
	"net/http"
	"time"
)

// healthcheckHandler handles GET /healthz. It reports 503 when the pool
// cannot reach the database within half a second.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
	defer cancel()

	if err := app.models.Ping(ctx); err != nil {
		app.databaseUnavailableResponse(w, r, err)
		return
	}

	env := envelope{
		"status":      "available",
		"environment": app.config.environment,
		"version":     appVersion,
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
