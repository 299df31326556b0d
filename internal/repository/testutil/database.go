// Package testutil provides migrated account databases for repository tests.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/automationexercise/shopcheck/internal/config"
	"github.com/automationexercise/shopcheck/internal/database"
)

// postgresDefaults target a stock local Postgres
var postgresDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

// TestDatabase is a migrated database owned by one test
type TestDatabase struct {
	DB         *sql.DB
	Dialect    database.Dialect
	SchemaName string
	admin      *sql.DB
}

// SetupSQLiteDatabase opens a migrated in-memory SQLite database that is closed when the
// test ends
func SetupSQLiteDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}

	td := &TestDatabase{DB: db, Dialect: database.SQLite}
	t.Cleanup(func() { td.Teardown(t) })

	if err := database.RunMigrations(db, nil); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return td
}

// SetupTestDatabase creates a throwaway Postgres schema, migrates it and returns a handle
// whose connections are pinned to it. The schema is dropped when the test ends.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(envWithDefaults)
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	admin, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	td := &TestDatabase{
		Dialect:    database.Postgres,
		SchemaName: "test_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		admin:      admin,
	}
	t.Cleanup(func() { td.Teardown(t) })

	if _, err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", td.SchemaName)); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td.DB, err = database.Connect(cfg.WithSearchPath(td.SchemaName))
	if err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	if err := database.RunMigrations(td.DB, nil); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return td
}

// Teardown closes the database and drops the test schema, if any. It is safe to call
// more than once.
func (td *TestDatabase) Teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
		td.DB = nil
	}

	if td.admin != nil {
		if _, err := td.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
			t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
		}
		td.admin.Close()
		td.admin = nil
	}
}

func envWithDefaults(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return postgresDefaults[key]
}
