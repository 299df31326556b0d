// Package database opens the storefront's account database: Postgres when configured,
// SQLite otherwise.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/automationexercise/shopcheck/internal/config"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names a supported SQL backend
type Dialect string

// Supported dialects
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// Rebind rewrites $n placeholders for d. SQLite reads ?n with the same numbering.
func (d Dialect) Rebind(query string) string {
	if d == SQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

// Connect establishes a connection to the PostgreSQL database
func Connect(cfg *config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open(string(Postgres), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenSQLite opens the SQLite database at path. ":memory:" gives a private in-memory
// database that lives as long as the returned handle.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(string(SQLite), path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection for the life of the handle: SQLite allows a single writer, and each
	// new connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return db, nil
}
