package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/services"
)

func newTestAccountHandler(t *testing.T, accounts *MockAccountService) (*AccountHandler, *services.MemorySessionStore) {
	t.Helper()
	sessions := services.NewMemorySessionStore()
	site := newTestSite(t, accounts, sessions)
	return NewAccountHandler(site, accounts, sessions), sessions
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withSession(req)
}

func accountForm() url.Values {
	return url.Values{
		"title":         {"Mrs"},
		"name":          {"Jane Doe"},
		"email":         {"jane@test.com"},
		"password":      {"Test@123"},
		"days":          {"5"},
		"months":        {"7"},
		"years":         {"1990"},
		"newsletter":    {"1"},
		"first_name":    {"Jane"},
		"last_name":     {"Doe"},
		"address1":      {"1 Test Street"},
		"country":       {"United States"},
		"state":         {"California"},
		"city":          {"Los Angeles"},
		"zipcode":       {"90001"},
		"mobile_number": {"+15551234567"},
	}
}

func TestAccountHandler_Login(t *testing.T) {
	h, _ := newTestAccountHandler(t, &MockAccountService{})

	w := httptest.NewRecorder()
	h.Login(w, withSession(httptest.NewRequest(http.MethodGet, "/login", nil)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	doc := parseBody(t, w)
	form := find(t, doc, ".signup-form", class("signup-form"))
	name := find(t, form, "name input", attrIs("data-qa", "signup-name"))
	email := find(t, form, "email input", attrIs("data-qa", "signup-email"))
	find(t, form, "signup button", tag("button"), attrIs("data-qa", "signup-button"))

	if _, ok := attrMap(name)["required"]; !ok {
		t.Error("expected the name input to be required")
	}
	if attr(email, "type") != "email" {
		t.Errorf("expected an email input, got type %q", attr(email, "type"))
	}
}

func TestAccountHandler_Signup(t *testing.T) {
	tests := []struct {
		name         string
		checkErr     error
		wantStatus   int
		wantLocation string
	}{
		{name: "new user", wantStatus: http.StatusOK},
		{name: "empty name", checkErr: models.ErrInvalidName, wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{name: "malformed email", checkErr: models.ErrInvalidEmail, wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{name: "email taken", checkErr: models.ErrEmailTaken, wantStatus: http.StatusOK},
		{name: "store failure", checkErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotName, gotEmail string
			h, _ := newTestAccountHandler(t, &MockAccountService{
				CheckSignupFunc: func(name, email string) error {
					gotName, gotEmail = name, email
					return tt.checkErr
				},
			})

			w := httptest.NewRecorder()
			h.Signup(w, postForm("/signup", url.Values{"name": {"Jane Doe"}, "email": {"jane@test.com"}}))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if gotName != "Jane Doe" || gotEmail != "jane@test.com" {
				t.Errorf("form not passed through: %q %q", gotName, gotEmail)
			}
			if tt.wantLocation != "" {
				if loc := w.Header().Get("Location"); loc != tt.wantLocation {
					t.Errorf("expected redirect to %s, got %s", tt.wantLocation, loc)
				}
			}
		})
	}
}

func TestAccountHandler_SignupShowsAccountInformation(t *testing.T) {
	h, _ := newTestAccountHandler(t, &MockAccountService{})

	w := httptest.NewRecorder()
	h.Signup(w, postForm("/signup", url.Values{"name": {"Jane Doe"}, "email": {"jane@test.com"}}))

	doc := parseBody(t, w)
	form := find(t, doc, ".login-form", class("login-form"))
	heading := find(t, form, "h2.title", tag("h2"), class("title"))
	if got := text(heading); got != "Enter Account Information" {
		t.Errorf("expected Enter Account Information, got %q", got)
	}
	if v := attr(find(t, form, "#name", attrIs("id", "name")), "value"); v != "Jane Doe" {
		t.Errorf("expected name carried over, got %q", v)
	}
	if v := attr(find(t, form, "#email", attrIs("id", "email")), "value"); v != "jane@test.com" {
		t.Errorf("expected email carried over, got %q", v)
	}

	for _, id := range []string{
		"id_gender1", "id_gender2", "password", "newsletter", "optin", "first_name", "last_name",
		"company", "address1", "address2", "state", "city", "zipcode", "mobile_number",
	} {
		find(t, form, "#"+id, attrIs("id", id))
	}
	find(t, form, "create account button", tag("button"), attrIs("data-qa", "create-account"))

	options := func(id string) []string {
		var values []string
		for _, o := range findAll(form, tag("option"), within(attrIs("id", id))) {
			values = append(values, attr(o, "value"))
		}
		return values
	}
	if days := options("days"); len(days) != 32 || days[1] != "1" || days[31] != "31" {
		t.Errorf("unexpected day options %v", days)
	}
	if months := options("months"); len(months) != 13 || months[1] != "1" || months[12] != "12" {
		t.Errorf("unexpected month options %v", months)
	}
	if years := options("years"); !slices.Contains(years, "1950") || !slices.Contains(years, "2000") {
		t.Errorf("expected years covering generated birth dates, got %d options", len(years))
	}
	if countries := options("country"); !slices.Equal(countries, Countries) {
		t.Errorf("expected countries %v, got %v", Countries, countries)
	}
}

func TestAccountHandler_SignupEmailTaken(t *testing.T) {
	h, _ := newTestAccountHandler(t, &MockAccountService{
		CheckSignupFunc: func(name, email string) error { return models.ErrEmailTaken },
	})

	w := httptest.NewRecorder()
	h.Signup(w, postForm("/signup", url.Values{"name": {"Jane Doe"}, "email": {"jane@test.com"}}))

	doc := parseBody(t, w)
	if got := text(find(t, doc, ".signup-error", class("signup-error"))); got != EmailTakenMessage {
		t.Errorf("expected %q, got %q", EmailTakenMessage, got)
	}
	find(t, doc, ".signup-form", class("signup-form"))
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	var got models.AccountDetails
	h, sessions := newTestAccountHandler(t, &MockAccountService{
		RegisterFunc: func(details models.AccountDetails) (*models.Account, error) {
			got = details
			return &models.Account{ID: "acc-1", Name: details.Name}, nil
		},
	})

	w := httptest.NewRecorder()
	h.CreateAccount(w, postForm("/create_account", accountForm()))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/account_created" {
		t.Errorf("expected redirect to /account_created, got %s", loc)
	}

	want := models.AccountDetails{
		Title:        "Mrs",
		Name:         "Jane Doe",
		Email:        "jane@test.com",
		Password:     "Test@123",
		Day:          "5",
		Month:        "7",
		Year:         "1990",
		Newsletter:   true,
		FirstName:    "Jane",
		LastName:     "Doe",
		Address1:     "1 Test Street",
		Country:      "United States",
		State:        "California",
		City:         "Los Angeles",
		Zipcode:      "90001",
		MobileNumber: "+15551234567",
	}
	if got != want {
		t.Errorf("expected details %+v, got %+v", want, got)
	}

	if id, ok := sessions.AccountID(testSession); !ok || id != "acc-1" {
		t.Errorf("expected the session logged in as acc-1, got %q %v", id, ok)
	}
}

func TestAccountHandler_CreateAccountErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing field",
			err:        fmt.Errorf("invalid account: %w: city", models.ErrMissingField),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid account: required field is missing: city",
		},
		{
			name:       "email taken",
			err:        fmt.Errorf("failed to create account: %w", models.ErrEmailTaken),
			wantStatus: http.StatusConflict,
			wantError:  EmailTakenMessage,
		},
		{
			name:       "store failure",
			err:        errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, sessions := newTestAccountHandler(t, &MockAccountService{
				RegisterFunc: func(models.AccountDetails) (*models.Account, error) { return nil, tt.err },
			})

			w := httptest.NewRecorder()
			h.CreateAccount(w, postForm("/create_account", accountForm()))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if _, ok := sessions.AccountID(testSession); ok {
				t.Error("expected the session to stay logged out")
			}
			if tt.wantError == "" {
				return
			}

			doc := parseBody(t, w)
			if got := text(find(t, doc, ".form-error", class("form-error"))); got != tt.wantError {
				t.Errorf("expected %q, got %q", tt.wantError, got)
			}
			mrs := find(t, doc, "#id_gender2", attrIs("id", "id_gender2"))
			if _, ok := attrMap(mrs)["checked"]; !ok {
				t.Error("expected the chosen title to stay selected")
			}
		})
	}
}

func TestAccountHandler_AccountCreated(t *testing.T) {
	accounts := &MockAccountService{
		GetAccountFunc: func(id string) (*models.Account, error) {
			return &models.Account{ID: id, Name: "Jane Doe"}, nil
		},
	}
	h, sessions := newTestAccountHandler(t, accounts)
	sessions.Login(testSession, "acc-1")

	w := httptest.NewRecorder()
	h.AccountCreated(w, withSession(httptest.NewRequest(http.MethodGet, "/account_created", nil)))

	doc := parseBody(t, w)
	heading := find(t, doc, "account created heading", tag("h2"), attrIs("data-qa", "account-created"))
	if got := text(heading); got != "Account Created!" {
		t.Errorf("expected Account Created!, got %q", got)
	}
	cont := find(t, doc, "continue link", tag("a"), attrIs("data-qa", "continue-button"))
	if attr(cont, "href") != "/" {
		t.Errorf("expected continue to go home, got %q", attr(cont, "href"))
	}

	user := find(t, doc, "logged in entry", tag("a"), within(class("shop-menu")), func(n *html.Node) bool {
		return len(findAll(n, class("fa-user"))) > 0
	})
	if got := text(user); got != "Logged in as Jane Doe" {
		t.Errorf("expected Logged in as Jane Doe, got %q", got)
	}
	for _, href := range []string{"/logout", "/delete_account"} {
		find(t, doc, href, tag("a"), attrIs("href", href))
	}
	if links := findAll(doc, tag("a"), attrIs("href", "/login")); len(links) != 0 {
		t.Error("expected no Signup / Login link while logged in")
	}
}

func TestAccountHandler_MissingAccountLogsOut(t *testing.T) {
	h, sessions := newTestAccountHandler(t, &MockAccountService{})
	sessions.Login(testSession, "gone")

	w := httptest.NewRecorder()
	h.Login(w, withSession(httptest.NewRequest(http.MethodGet, "/login", nil)))

	if _, ok := sessions.AccountID(testSession); ok {
		t.Error("expected the session to be logged out")
	}
	doc := parseBody(t, w)
	find(t, doc, "login link", tag("a"), attrIs("href", "/login"))
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	tests := []struct {
		name         string
		loggedIn     bool
		deleteErr    error
		wantStatus   int
		wantLocation string
	}{
		{name: "logged in", loggedIn: true, wantStatus: http.StatusOK},
		{name: "already gone", loggedIn: true, deleteErr: models.ErrAccountNotFound, wantStatus: http.StatusOK},
		{name: "logged out", wantStatus: http.StatusFound, wantLocation: "/login"},
		{name: "store failure", loggedIn: true, deleteErr: errors.New("timeout"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var deleted string
			h, sessions := newTestAccountHandler(t, &MockAccountService{
				GetAccountFunc: func(id string) (*models.Account, error) {
					return &models.Account{ID: id, Name: "Jane Doe"}, nil
				},
				DeleteAccountFunc: func(id string) error {
					deleted = id
					return tt.deleteErr
				},
			})
			if tt.loggedIn {
				sessions.Login(testSession, "acc-1")
			}

			w := httptest.NewRecorder()
			h.DeleteAccount(w, withSession(httptest.NewRequest(http.MethodGet, "/delete_account", nil)))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantLocation != "" {
				if loc := w.Header().Get("Location"); loc != tt.wantLocation {
					t.Errorf("expected redirect to %s, got %s", tt.wantLocation, loc)
				}
				return
			}
			if deleted != "acc-1" {
				t.Errorf("expected acc-1 deleted, got %q", deleted)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			if _, ok := sessions.AccountID(testSession); ok {
				t.Error("expected the session to be logged out")
			}
			doc := parseBody(t, w)
			find(t, doc, "account deleted heading", tag("h2"), attrIs("data-qa", "account-deleted"))
			find(t, doc, "continue link", tag("a"), attrIs("data-qa", "continue-button"))
			if len(findAll(doc, class("fa-user"))) != 0 {
				t.Error("expected the header to show the session logged out")
			}
		})
	}
}

func TestAccountHandler_Logout(t *testing.T) {
	h, sessions := newTestAccountHandler(t, &MockAccountService{})
	sessions.Login(testSession, "acc-1")

	w := httptest.NewRecorder()
	h.Logout(w, withSession(httptest.NewRequest(http.MethodGet, "/logout", nil)))

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", w.Code)
	}
	if _, ok := sessions.AccountID(testSession); ok {
		t.Error("expected the session to be logged out")
	}
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}
