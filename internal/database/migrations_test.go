package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, RunMigrations(db, zap.New(core)))
	// idempotent
	require.NoError(t, RunMigrations(db, nil))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	assert.Zero(t, n)
	assert.Equal(t, 1, logs.FilterMessage("database migrations completed").Len())
}

func TestRunMigrationsNilDB(t *testing.T) {
	assert.Error(t, RunMigrations(nil, nil))
}

func TestRebind(t *testing.T) {
	query := `SELECT id FROM accounts WHERE email = $1 AND id = $2`

	assert.Equal(t, query, Postgres.Rebind(query))
	assert.Equal(t, `SELECT id FROM accounts WHERE email = ?1 AND id = ?2`, SQLite.Rebind(query))
}
