package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// createAccountsTable is valid in both dialects: ids are UUID strings and timestamps are
// stored in UTC.
const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(8) NOT NULL DEFAULT '',
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) UNIQUE NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	birth_date VARCHAR(10) NOT NULL DEFAULT '',
	newsletter BOOLEAN NOT NULL DEFAULT FALSE,
	special_offers BOOLEAN NOT NULL DEFAULT FALSE,
	first_name VARCHAR(255) NOT NULL,
	last_name VARCHAR(255) NOT NULL,
	company VARCHAR(255) NOT NULL DEFAULT '',
	address1 VARCHAR(255) NOT NULL,
	address2 VARCHAR(255) NOT NULL DEFAULT '',
	country VARCHAR(100) NOT NULL,
	state VARCHAR(100) NOT NULL,
	city VARCHAR(100) NOT NULL,
	zipcode VARCHAR(20) NOT NULL,
	mobile_number VARCHAR(32) NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email);
`

// RunMigrations creates the necessary database tables
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	if _, err := db.Exec(createAccountsTable); err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}

	if logger != nil {
		logger.Info("database migrations completed")
	}
	return nil
}
