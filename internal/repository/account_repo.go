package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/automationexercise/shopcheck/internal/database"
	"github.com/automationexercise/shopcheck/internal/models"
)

const accountColumns = `id, title, name, email, password_hash, birth_date, newsletter, special_offers,
	first_name, last_name, company, address1, address2, country, state, city, zipcode,
	mobile_number, created_at`

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewAccountRepository creates a new account repository on db
func NewAccountRepository(db *sql.DB, dialect database.Dialect) *AccountRepository {
	return &AccountRepository{
		db:      db,
		dialect: dialect,
	}
}

// CreateAccount inserts account. A second account with the same email is
// models.ErrEmailTaken.
func (r *AccountRepository) CreateAccount(account *models.Account) error {
	query := r.dialect.Rebind(`
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`)

	_, err := r.db.Exec(query,
		account.ID,
		account.Title,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.BirthDate,
		account.Newsletter,
		account.SpecialOffers,
		account.FirstName,
		account.LastName,
		account.Company,
		account.Address1,
		account.Address2,
		account.Country,
		account.State,
		account.City,
		account.Zipcode,
		account.MobileNumber,
		account.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", models.ErrEmailTaken, account.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByID retrieves an account by its ID
func (r *AccountRepository) GetAccountByID(id string) (*models.Account, error) {
	return r.getAccount(`id = $1`, id)
}

// GetAccountByEmail retrieves an account by its email address
func (r *AccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	return r.getAccount(`email = $1`, email)
}

func (r *AccountRepository) getAccount(where string, arg string) (*models.Account, error) {
	query := r.dialect.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE ` + where)

	account := &models.Account{}
	err := r.db.QueryRow(query, arg).Scan(
		&account.ID,
		&account.Title,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.BirthDate,
		&account.Newsletter,
		&account.SpecialOffers,
		&account.FirstName,
		&account.LastName,
		&account.Company,
		&account.Address1,
		&account.Address2,
		&account.Country,
		&account.State,
		&account.City,
		&account.Zipcode,
		&account.MobileNumber,
		&account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// DeleteAccount removes the account with id
func (r *AccountRepository) DeleteAccount(id string) error {
	result, err := r.db.Exec(r.dialect.Rebind(`DELETE FROM accounts WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrAccountNotFound
	}

	return nil
}

// isUniqueViolation recognises a unique constraint failure from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
