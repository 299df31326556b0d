package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/automationexercise/shopcheck/internal/models"
	"github.com/automationexercise/shopcheck/internal/services"
)

// MockAccountService is a mock implementation of services.AccountService
type MockAccountService struct {
	CheckSignupFunc   func(name, email string) error
	RegisterFunc      func(details models.AccountDetails) (*models.Account, error)
	GetAccountFunc    func(id string) (*models.Account, error)
	DeleteAccountFunc func(id string) error
}

func (m *MockAccountService) CheckSignup(name, email string) error {
	if m.CheckSignupFunc != nil {
		return m.CheckSignupFunc(name, email)
	}
	return nil
}

func (m *MockAccountService) Register(details models.AccountDetails) (*models.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(details)
	}
	return &models.Account{ID: "acc-1", Name: details.Name, Email: details.Email}, nil
}

func (m *MockAccountService) GetAccount(id string) (*models.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(id)
	}
	return nil, models.ErrAccountNotFound
}

func (m *MockAccountService) DeleteAccount(id string) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(id)
	}
	return nil
}

const testSession = "6f1c2a8e-0d4b-4c55-9b53-2a7d3f0e9c11"

func newTestSite(t *testing.T, accounts services.AccountService, sessions services.SessionStore) *Site {
	t.Helper()
	renderer, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	return NewSite(renderer, sessions, accounts, nil)
}

// withSession attaches the fixed test session cookie to req
func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testSession})
	return req
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(w.Body.String()))
	if err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return n.Type == html.ElementNode && strings.Contains(" "+attr(n, "class")+" ", " "+class+" ")
}

// findAll returns the elements under n matching every predicate, in document order
func findAll(n *html.Node, match ...func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := range n.Descendants() {
		if c.Type != html.ElementNode {
			continue
		}
		ok := true
		for _, m := range match {
			if !m(c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func find(t *testing.T, n *html.Node, what string, match ...func(*html.Node) bool) *html.Node {
	t.Helper()
	found := findAll(n, match...)
	if len(found) == 0 {
		t.Fatalf("no element matching %s", what)
	}
	return found[0]
}

func tag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name }
}

func class(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, name) }
}

func attrIs(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, key) == value }
}

func within(ancestor func(*html.Node) bool) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Type == html.ElementNode && ancestor(p) {
				return true
			}
		}
		return false
	}
}

// text returns the whitespace-collapsed text content of n
func text(n *html.Node) string {
	var sb strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func texts(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, text(n))
	}
	return out
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}
