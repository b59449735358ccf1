// cmd/api/errors.go
// JSON error replies for the catalogue. Every reply is {"error": ...}; the
// handlers pick the helper that matches how a request failed.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
)

// logError records a failure the client only sees as a generic message.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", requestIDFrom(r)),
	)
}

// errorResponse writes {"error": message}. message is a string, or a map of
// field names to problems for validation failures.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := app.writeJSON(w, status, envelope{"error": message}, nil); err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse hides err from the client behind a fixed 500 message.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the books service failed to handle this request")
}

// bookNotFoundResponse reports that no book row has the id from the path.
func (app *applicationDependencies) bookNotFoundResponse(w http.ResponseWriter, r *http.Request, id int64) {
	app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("book %d does not exist", id))
}

// routeNotFoundResponse backs the router for paths no endpoint serves.
func (app *applicationDependencies) routeNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, fmt.Sprintf("no books endpoint at %s", r.URL.Path))
}

func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("%s is not allowed on %s; see the Allow header", r.Method, r.URL.Path)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse passes err to the client, so err must not carry
// internal detail. readJSON and readIDParam only produce client-safe errors.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse answers 422 with every field problem at once.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, problems map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, problems)
}

// databaseUnavailableResponse answers 503 when the health check cannot
// reach the books database.
func (app *applicationDependencies) databaseUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusServiceUnavailable, "the books database is unreachable")
}
