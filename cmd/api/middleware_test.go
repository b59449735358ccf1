package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	app.recoverPanic(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	assert.Contains(t, w.Body.String(), "the books service failed to handle this request")
}

func TestAssignRequestID(t *testing.T) {
	app := newTestApplication(t)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r)
	})
	handler := app.assignRequestID(next)

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(requestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, seen)
	})

	t.Run("propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(requestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
		assert.Equal(t, "abc-123", seen)
	})
}

func TestLogRequests(t *testing.T) {
	app := newTestApplication(t)

	var buf bytes.Buffer
	app.logger = slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r := httptest.NewRequest(http.MethodDelete, "/delete/9/", nil)
	app.logRequests(next).ServeHTTP(httptest.NewRecorder(), r)

	line := buf.String()
	assert.Contains(t, line, "method=DELETE")
	assert.Contains(t, line, "path=/delete/9/")
	assert.Contains(t, line, "status=418")
}

func TestMiddleware_LogsRecoveredPanic(t *testing.T) {
	app := newTestApplication(t)

	var buf bytes.Buffer
	app.logger = slog.New(slog.NewTextHandler(&buf, nil))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("cover store exploded")
	})

	r := httptest.NewRequest(http.MethodPut, "/cover/7/", nil)
	r.Header.Set(requestIDHeader, "req-7")
	w := httptest.NewRecorder()
	app.middleware(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logged := buf.String()
	assert.Contains(t, logged, "cover store exploded")
	assert.Contains(t, logged, "msg=request")
	assert.Contains(t, logged, "path=/cover/7/")
	assert.Contains(t, logged, "status=500")
	assert.Contains(t, logged, "request_id=req-7")
}

func TestRoutes_SetRequestIDHeader(t *testing.T) {
	app := newTestApplication(t)

	w := app.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}
