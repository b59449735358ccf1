// Package datatest provides an in-memory books database for tests.
//
// SQLite stands in for PostgreSQL here only. Its LOWER() folds ASCII
// letters alone, so tests of case-insensitive matching stick to ASCII text.
package datatest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3" // Register the sqlite3 driver with database/sql.
)

// Schema is the SQLite rendition of migrations/000001_create_books_table.up.sql.
const Schema = `
CREATE TABLE books (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    title      TEXT    NOT NULL CHECK (length(title) >= 3),
    author     TEXT    NOT NULL CHECK (length(author) >= 3),
    year       INTEGER NOT NULL CHECK (year > 1000 AND year <= 2026),
    publisher  TEXT    NOT NULL CHECK (length(publisher) >= 3),
    cover_path TEXT
);`

// NewDB opens a fresh in-memory database with the books table created.
// The pool is pinned to one connection because every SQLite :memory:
// connection owns a separate database. It is closed when t finishes.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

// CountBooks returns the number of rows in the books table.
func CountBooks(t testing.TB, db *sql.DB) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		t.Fatalf("count books: %v", err)
	}
	return n
}
