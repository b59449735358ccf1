package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aoideee/books-api/internal/covers"
	"github.com/aoideee/books-api/internal/data"
	"github.com/aoideee/books-api/internal/data/datatest"
)

type testApp struct {
	*applicationDependencies
	db      *sql.DB
	handler http.Handler
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	db := datatest.NewDB(t)

	var cfg serverConfig
	cfg.environment = "testing"
	cfg.covers.dir = filepath.Join(t.TempDir(), "covers")

	app := &applicationDependencies{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.NewModels(db, 0),
		covers: covers.NewStore(cfg.covers.dir),
	}
	return &testApp{applicationDependencies: app, db: db, handler: app.routes()}
}

func (ta *testApp) do(t *testing.T, method, target string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, target, body)
	for k, v := range header {
		r.Header[k] = v
	}
	w := httptest.NewRecorder()
	ta.handler.ServeHTTP(w, r)
	return w
}

func (ta *testApp) doJSON(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}
	return ta.do(t, method, target, body, http.Header{"Content-Type": {"application/json"}})
}

// createBook posts a book and returns its new id.
func (ta *testApp) createBook(t *testing.T, title, author string, year int, publisher string) int64 {
	t.Helper()

	w := ta.doJSON(t, http.MethodPost, "/add/", map[string]any{
		"title":     title,
		"author":    author,
		"year":      year,
		"publisher": publisher,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &resp)
	require.NotZero(t, resp.ID)
	return resp.ID
}

func (ta *testApp) countBooks(t *testing.T) int {
	return datatest.CountBooks(t, ta.db)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}
