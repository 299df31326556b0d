package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/services"
)

// EmailTakenMessage is shown under the signup form when the email is already registered
const EmailTakenMessage = "Email Address already exist!"

// Countries lists the choices of the account information country dropdown
var Countries = []string{
	"India",
	"United States",
	"Canada",
	"Australia",
	"Israel",
	"New Zealand",
	"Singapore",
}

var months = func() []string {
	out := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, m.String())
	}
	return out
}()

// LoginData represents the data for the login template
type LoginData struct {
	Layout
	Name        string
	Email       string
	SignupError string
}

// SignupData represents the data for the account information template
type SignupData struct {
	Layout
	Title     string
	Name      string
	Email     string
	Error     string
	Months    []string
	Countries []string
}

// AccountHandler serves signup, account creation, logout and account deletion
type AccountHandler struct {
	site     *Site
	accounts services.AccountService
	sessions services.SessionStore
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(site *Site, accounts services.AccountService, sessions services.SessionStore) *AccountHandler {
	return &AccountHandler{
		site:     site,
		accounts: accounts,
		sessions: sessions,
	}
}

// Login renders the "New User Signup!" form
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	_, layout := h.site.layout(w, r, "Signup / Login")
	h.site.render(w, http.StatusOK, "login", LoginData{Layout: layout})
}

// Signup checks the signup form and moves on to the account information form. An invalid
// name or email sends the browser back to the login page.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")

	_, layout := h.site.layout(w, r, "Signup")
	err := h.accounts.CheckSignup(name, email)
	switch {
	case err == nil:
		h.site.render(w, http.StatusOK, "signup", h.signupData(layout, name, email))
	case errors.Is(err, models.ErrInvalidName), errors.Is(err, models.ErrInvalidEmail):
		h.site.logger.Info("signup rejected", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, models.ErrEmailTaken):
		h.site.render(w, http.StatusOK, "login", LoginData{
			Layout:      layout,
			Name:        name,
			Email:       email,
			SignupError: EmailTakenMessage,
		})
	default:
		h.site.logger.Error("failed to check signup", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// CreateAccount registers the account information form and logs the session in
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	details := accountDetails(r)

	sid, layout := h.site.layout(w, r, "Signup")
	account, err := h.accounts.Register(details)
	if err != nil {
		data := h.signupData(layout, details.Name, details.Email)
		data.Title = details.Title

		switch {
		case errors.Is(err, models.ErrEmailTaken):
			data.Error = EmailTakenMessage
			h.site.render(w, http.StatusConflict, "signup", data)
		case isValidationError(err):
			data.Error = err.Error()
			h.site.render(w, http.StatusBadRequest, "signup", data)
		default:
			h.site.logger.Error("failed to create account", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.sessions.Login(sid, account.ID)
	h.site.logger.Info("account created",
		zap.String("account_id", account.ID), zap.String("session_id", sid))

	http.Redirect(w, r, "/account_created", http.StatusSeeOther)
}

// AccountCreated renders the "Account Created!" confirmation
func (h *AccountHandler) AccountCreated(w http.ResponseWriter, r *http.Request) {
	_, layout := h.site.layout(w, r, "Account Created")
	h.site.render(w, http.StatusOK, "account_created", struct{ Layout }{layout})
}

// DeleteAccount deletes the logged-in account, logs the session out and renders the
// "Account Deleted!" confirmation
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sid, layout := h.site.layout(w, r, "Account Deleted")
	accountID, ok := h.sessions.AccountID(sid)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	err := h.accounts.DeleteAccount(accountID)
	if err != nil && !errors.Is(err, models.ErrAccountNotFound) {
		h.site.logger.Error("failed to delete account",
			zap.String("account_id", accountID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.sessions.Logout(sid)
	h.site.logger.Info("account deleted", zap.String("account_id", accountID))

	layout.LoggedInAs = ""
	h.site.render(w, http.StatusOK, "account_deleted", struct{ Layout }{layout})
}

// Logout ends the session's login
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(sessionID(w, r))
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AccountHandler) signupData(layout Layout, name, email string) SignupData {
	return SignupData{
		Layout:    layout,
		Name:      name,
		Email:     email,
		Months:    months,
		Countries: Countries,
	}
}

func accountDetails(r *http.Request) models.AccountDetails {
	return models.AccountDetails{
		Title:         r.PostFormValue("title"),
		Name:          r.PostFormValue("name"),
		Email:         r.PostFormValue("email"),
		Password:      r.PostFormValue("password"),
		Day:           r.PostFormValue("days"),
		Month:         r.PostFormValue("months"),
		Year:          r.PostFormValue("years"),
		Newsletter:    r.PostFormValue("newsletter") != "",
		SpecialOffers: r.PostFormValue("optin") != "",
		FirstName:     r.PostFormValue("first_name"),
		LastName:      r.PostFormValue("last_name"),
		Company:       r.PostFormValue("company"),
		Address1:      r.PostFormValue("address1"),
		Address2:      r.PostFormValue("address2"),
		Country:       r.PostFormValue("country"),
		State:         r.PostFormValue("state"),
		City:          r.PostFormValue("city"),
		Zipcode:       r.PostFormValue("zipcode"),
		MobileNumber:  r.PostFormValue("mobile_number"),
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		models.ErrInvalidName,
		models.ErrInvalidEmail,
		models.ErrInvalidPassword,
		models.ErrInvalidTitle,
		models.ErrInvalidBirthDate,
		models.ErrMissingField,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
