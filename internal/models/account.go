package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors
var (
	ErrInvalidName      = errors.New("name cannot be empty")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrInvalidPassword  = errors.New("password cannot be empty")
	ErrInvalidTitle     = errors.New("title must be Mr or Mrs")
	ErrInvalidBirthDate = errors.New("date of birth is not a valid date")
	ErrMissingField     = errors.New("required field is missing")
	ErrEmailTaken       = errors.New("email address already exists")
	ErrAccountNotFound  = errors.New("account not found")
)

// Account is a registered storefront customer
type Account struct {
	ID            string
	Title         string
	Name          string
	Email         string
	PasswordHash  string
	BirthDate     string
	Newsletter    bool
	SpecialOffers bool
	FirstName     string
	LastName      string
	Company       string
	Address1      string
	Address2      string
	Country       string
	State         string
	City          string
	Zipcode       string
	MobileNumber  string
	CreatedAt     time.Time
}

// AccountDetails is the account information form as submitted
type AccountDetails struct {
	Title         string
	Name          string
	Email         string
	Password      string
	Day           string
	Month         string
	Year          string
	Newsletter    bool
	SpecialOffers bool
	FirstName     string
	LastName      string
	Company       string
	Address1      string
	Address2      string
	Country       string
	State         string
	City          string
	Zipcode       string
	MobileNumber  string
}

// ValidateSignup checks the name and email of the "New User Signup!" form
func ValidateSignup(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

// NewAccount validates details and creates an account with a hashed password
func NewAccount(details AccountDetails) (*Account, error) {
	if err := ValidateSignup(details.Name, details.Email); err != nil {
		return nil, err
	}
	if details.Password == "" {
		return nil, ErrInvalidPassword
	}
	if details.Title != "" && details.Title != "Mr" && details.Title != "Mrs" {
		return nil, ErrInvalidTitle
	}

	required := []struct {
		field string
		value string
	}{
		{"first name", details.FirstName},
		{"last name", details.LastName},
		{"address", details.Address1},
		{"country", details.Country},
		{"state", details.State},
		{"city", details.City},
		{"zipcode", details.Zipcode},
		{"mobile number", details.MobileNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}

	birthDate, err := formatBirthDate(details.Day, details.Month, details.Year)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(details.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &Account{
		ID:            uuid.New().String(),
		Title:         details.Title,
		Name:          strings.TrimSpace(details.Name),
		Email:         details.Email,
		PasswordHash:  string(hash),
		BirthDate:     birthDate,
		Newsletter:    details.Newsletter,
		SpecialOffers: details.SpecialOffers,
		FirstName:     details.FirstName,
		LastName:      details.LastName,
		Company:       details.Company,
		Address1:      details.Address1,
		Address2:      details.Address2,
		Country:       details.Country,
		State:         details.State,
		City:          details.City,
		Zipcode:       details.Zipcode,
		MobileNumber:  details.MobileNumber,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// CheckPassword reports whether password matches the stored hash
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// formatBirthDate returns YYYY-MM-DD, or "" when the date was left blank. A partly filled
// date is an error.
func formatBirthDate(day, month, year string) (string, error) {
	if day == "" && month == "" && year == "" {
		return "", nil
	}

	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return "", ErrInvalidBirthDate
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return "", fmt.Errorf("%w: %s-%s-%s", ErrInvalidBirthDate, year, month, day)
	}
	return t.Format(time.DateOnly), nil
}
