// Package main is the entry point for the books API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/books-api/internal/covers"
	"github.com/aoideee/books-api/internal/data"

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the "pgx" driver.
	_ "github.com/lib/pq"              // Registers the "postgres" driver.
)

// appVersion is the current version of the API, shown in logs and /healthz.
const appVersion = "1.1.0"

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig  // Server configuration loaded from flags
	logger *slog.Logger  // Structured logger that writes to stdout
	models data.Models   // Database model layer for all tables
	covers *covers.Store // Filesystem storage for uploaded covers
}

// main is the application entry point.
// It parses flags, opens the database, wires up dependencies, and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run holds everything main does so deferred cleanups execute before the
// process exits.
func run() error {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	settings, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	logger := newLogger(settings.logFormat)

	// Open and verify the database connection pool.
	db, err := openDB(settings)
	if err != nil {
		logger.Error("cannot connect to database", "driver", settings.db.driver, "error", err)
		return err
	}
	defer db.Close() // Close the pool cleanly on every return path.

	logger.Info("database connection pool established", "driver", settings.db.driver)

	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db, settings.db.queryTimeout),
		covers: covers.NewStore(settings.covers.dir),
	}

	if err := appInstance.serve(); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

// newLogger creates a structured logger writing to stdout, human-readable
// text unless format is "json".
func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// openDB opens a connection pool using the driver and DSN stored in settings,
// applies the pool limits, then pings the database with a 5-second timeout to
// confirm it is reachable.
func openDB(settings serverConfig) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open(settings.db.driver, settings.db.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", settings.db.driver, err)
	}

	db.SetMaxOpenConns(settings.db.maxOpenConns)
	db.SetMaxIdleConns(settings.db.maxIdleConns)
	db.SetConnMaxIdleTime(settings.db.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// PingContext performs a real round-trip to verify the database is reachable.
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", settings.db.driver, err)
	}

	return db, nil
}
