// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the middleware chain.
//
// Middleware chain (outermost → innermost):
//
//	assignRequestID → logRequests → recoverPanic → router
//
// Current endpoints:
//
//	GET    /?q=              – search titles and authors
//	POST   /add/             – create a new book
//	DELETE /delete/:id/      – delete a book by ID
//	PUT    /update/:id/      – partially update an existing book
//	PUT    /cover/:id/       – upload a cover image for a book
//	GET    /author_count/?q= – count books per matching author
//	GET    /healthz          – liveness and database reachability
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.routeNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.searchBooksHandler)
	router.HandlerFunc(http.MethodPost, "/add/", app.createBookHandler)
	router.HandlerFunc(http.MethodDelete, "/delete/:id/", app.deleteBookHandler)
	router.HandlerFunc(http.MethodPut, "/update/:id/", app.updateBookHandler)
	router.HandlerFunc(http.MethodPut, "/cover/:id/", app.uploadCoverHandler)
	router.HandlerFunc(http.MethodGet, "/author_count/", app.authorCountHandler)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthcheckHandler)

	return app.middleware(router)
}

// middleware wraps next in the standard chain. recoverPanic sits inside
// logRequests so a handler panic still produces an access-log line with
// the 500 it was turned into.
func (app *applicationDependencies) middleware(next http.Handler) http.Handler {
	return app.assignRequestID(app.logRequests(app.recoverPanic(next)))
}
