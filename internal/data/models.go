// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SearchLimit caps the number of rows returned by BookModel.Search.
const SearchLimit = 10

// DefaultQueryTimeout bounds every statement when the caller does not
// configure one.
const DefaultQueryTimeout = 3 * time.Second

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table

	db *sql.DB
}

// NewModels constructs a Models value wired up to the given database connection pool.
// A non-positive queryTimeout falls back to DefaultQueryTimeout.
func NewModels(db *sql.DB, queryTimeout time.Duration) Models {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return Models{
		Books: BookModel{DB: db, Timeout: queryTimeout},
		db:    db,
	}
}

// Ping checks that the pool can still reach the database.
func (m Models) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, searching and deleting book records.
//
// Queries use $N placeholders and avoid engine-specific operators. They run
// on PostgreSQL through lib/pq or pgx, and on SQLite in tests.
type BookModel struct {
	DB      *sql.DB       // Shared database connection pool
	Timeout time.Duration // Upper bound for a single statement
}

const bookColumns = `id, title, author, year, publisher, cover_path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var book Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.Publisher,
		&book.CoverPath,
	)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// likeEscaper escapes LIKE wildcards so the user's text is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into a LIKE pattern matching q anywhere in a column.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// Insert adds a new book record to the database.
// After a successful insert the database-assigned id is written back into book.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (title, author, year, publisher)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query,
		book.Title,
		book.Author,
		book.Year,
		book.Publisher,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	return nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get book %d: %w", id, err)
		}
	}
	return book, nil
}

// Search returns up to SearchLimit books whose title or author contains q,
// ignoring case. Row order is whatever the store returns.
func (m BookModel) Search(ctx context.Context, q string) ([]*Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE LOWER(title) LIKE LOWER($1) ESCAPE '\'
		   OR LOWER(author) LIKE LOWER($1) ESCAPE '\'
		LIMIT $2`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, containsPattern(q), SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	return books, nil
}

// CountByAuthor counts books per author for every author containing q,
// ignoring case. Authors are grouped by their exact stored spelling, so
// "J.R.R. Tolkien" and "Tolkien Estate" are separate entries.
func (m BookModel) CountByAuthor(ctx context.Context, q string) (map[string]int, error) {
	query := `
		SELECT author, COUNT(*)
		FROM books
		WHERE LOWER(author) LIKE LOWER($1) ESCAPE '\'
		GROUP BY author`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, containsPattern(q))
	if err != nil {
		return nil, fmt.Errorf("count books by author: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			author string
			n      int
		)
		if err := rows.Scan(&author, &n); err != nil {
			return nil, fmt.Errorf("scan author count: %w", err)
		}
		counts[author] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("count books by author: %w", err)
	}

	return counts, nil
}

// Update saves the editable fields of book back to the database in one
// statement. cover_path is owned by SetCover and is left untouched.
// Returns ErrRecordNotFound if the row disappeared since it was read.
func (m BookModel) Update(ctx context.Context, book *Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, year = $3, publisher = $4
		WHERE id = $5`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.Year,
		book.Publisher,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// SetCover records path as the cover of book id and returns the updated row.
func (m BookModel) SetCover(ctx context.Context, id int64, path string) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
		UPDATE books
		SET cover_path = $1
		WHERE id = $2
		RETURNING ` + bookColumns

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, path, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("set cover for book %d: %w", id, err)
		}
	}
	return book, nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
