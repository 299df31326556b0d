package services

import (
	"errors"
	"fmt"

	"github.com/automationexercise/shopcheck/internal/models"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByID(id string) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	DeleteAccount(id string) error
}

// AccountService handles signup and account business logic
type AccountService interface {
	// CheckSignup validates the signup form and rejects an email that is already registered
	CheckSignup(name, email string) error
	Register(details models.AccountDetails) (*models.Account, error)
	GetAccount(id string) (*models.Account, error)
	DeleteAccount(id string) error
}

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	accountRepo AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo AccountRepository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

func (s *AccountServiceImpl) CheckSignup(name, email string) error {
	if err := models.ValidateSignup(name, email); err != nil {
		return err
	}

	_, err := s.accountRepo.GetAccountByEmail(email)
	switch {
	case err == nil:
		return models.ErrEmailTaken
	case errors.Is(err, models.ErrAccountNotFound):
		return nil
	default:
		return fmt.Errorf("failed to look up email: %w", err)
	}
}

// Register creates and stores a new account
func (s *AccountServiceImpl) Register(details models.AccountDetails) (*models.Account, error) {
	account, err := models.NewAccount(details)
	if err != nil {
		return nil, fmt.Errorf("invalid account: %w", err)
	}

	if err := s.accountRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

func (s *AccountServiceImpl) GetAccount(id string) (*models.Account, error) {
	account, err := s.accountRepo.GetAccountByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *AccountServiceImpl) DeleteAccount(id string) error {
	if err := s.accountRepo.DeleteAccount(id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
