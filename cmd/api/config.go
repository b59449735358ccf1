// cmd/api/config.go
// Command-line configuration. Every flag takes its default from an
// environment variable so the same binary runs under docker-compose,
// systemd or a plain shell.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all the values that can be tweaked at startup via command-line flags.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
	logFormat   string // text or json
	db          struct {
		driver       string        // database/sql driver name: postgres or pgx
		dsn          string        // Data Source Name (connection string)
		maxOpenConns int           // Upper bound of the connection pool
		maxIdleConns int           // Connections kept open while idle
		maxIdleTime  time.Duration // Idle connections older than this are closed
		queryTimeout time.Duration // Deadline applied to each statement
	}
	covers struct {
		dir string // Directory uploaded cover files are written to
	}
}

// parseFlags registers the flags on fs and parses args.
func parseFlags(fs *flag.FlagSet, args []string) (serverConfig, error) {
	var cfg serverConfig

	fs.IntVar(&cfg.port, "port", getEnvInt("PORT", 4000), "Server port")
	fs.StringVar(&cfg.environment, "env", getEnv("APP_ENV", "development"), "Environment (development|staging|production)")
	fs.StringVar(&cfg.logFormat, "log-format", getEnv("LOG_FORMAT", "text"), "Log output format (text|json)")

	fs.StringVar(&cfg.db.driver, "db-driver", getEnv("DB_DRIVER", "postgres"), "database/sql driver (postgres|pgx)")
	fs.StringVar(&cfg.db.dsn, "db-dsn", getEnv("DB_DSN", defaultDSN()), "Database DSN")
	fs.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", getEnvInt("DB_MAX_OPEN_CONNS", 10), "Maximum open database connections")
	fs.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", getEnvInt("DB_MAX_IDLE_CONNS", 1), "Maximum idle database connections")
	fs.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", getEnvDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "Maximum connection idle time")
	fs.DurationVar(&cfg.db.queryTimeout, "db-query-timeout", getEnvDuration("DB_QUERY_TIMEOUT", 3*time.Second), "Timeout for a single query")

	fs.StringVar(&cfg.covers.dir, "covers-dir", getEnv("COVERS_DIR", "covers"), "Directory for uploaded cover images")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	// The shipped schema and the case-insensitive search both rely on
	// PostgreSQL, so only its drivers are accepted.
	switch cfg.db.driver {
	case "postgres", "pgx":
	default:
		return cfg, fmt.Errorf("unsupported -db-driver %q: want postgres or pgx", cfg.db.driver)
	}

	return cfg, nil
}

// defaultDSN builds a PostgreSQL URL from the libpq environment variables.
func defaultDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(getEnv("PGHOST", "localhost"), getEnv("PGPORT", "5432")),
		Path:     "/" + getEnv("PGDATABASE", "books"),
		RawQuery: "sslmode=" + getEnv("PGSSLMODE", "disable"),
	}
	if user := os.Getenv("PGUSER"); user != "" {
		if password, ok := os.LookupEnv("PGPASSWORD"); ok {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
