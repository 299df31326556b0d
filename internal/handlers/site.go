package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/automationexercise/shopcheck/internal/services"
)

// Layout is the data the shared page layout reads
type Layout struct {
	PageTitle  string
	LoggedInAs string
}

// Site holds what every storefront page needs: templates, sessions and the logged-in
// account's name for the header
type Site struct {
	renderer *Renderer
	sessions services.SessionStore
	accounts services.AccountService
	logger   *zap.Logger
}

// NewSite creates a Site. A nil logger discards log output.
func NewSite(renderer *Renderer, sessions services.SessionStore, accounts services.AccountService, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Site{
		renderer: renderer,
		sessions: sessions,
		accounts: accounts,
		logger:   logger,
	}
}

// layout resolves the request's session and the header it should show. A session whose
// account no longer exists is logged out.
func (s *Site) layout(w http.ResponseWriter, r *http.Request, title string) (string, Layout) {
	sid := sessionID(w, r)
	l := Layout{PageTitle: title}

	accountID, ok := s.sessions.AccountID(sid)
	if !ok {
		return sid, l
	}
	account, err := s.accounts.GetAccount(accountID)
	if err != nil {
		s.logger.Warn("dropping session for missing account",
			zap.String("account_id", accountID), zap.Error(err))
		s.sessions.Logout(sid)
		return sid, l
	}
	l.LoggedInAs = account.Name
	return sid, l
}

func (s *Site) render(w http.ResponseWriter, status int, page string, data any) {
	if err := s.renderer.Render(w, status, page, data); err != nil {
		s.logger.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
