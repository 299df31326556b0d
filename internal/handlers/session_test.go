package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSessionID(t *testing.T) {
	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantReuse bool
	}{
		{
			name:      "existing session is reused",
			cookie:    &http.Cookie{Name: SessionCookie, Value: testSession},
			wantReuse: true,
		},
		{
			name: "no cookie issues a new session",
		},
		{
			name:   "malformed cookie issues a new session",
			cookie: &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"},
		},
		{
			name:   "unrelated cookie is ignored",
			cookie: &http.Cookie{Name: "theme", Value: testSession},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			id := sessionID(w, req)
			issued := sessionCookie(w)

			if tt.wantReuse {
				if id != testSession {
					t.Errorf("expected session %s, got %s", testSession, id)
				}
				if issued != nil {
					t.Errorf("expected no new cookie, got %v", issued)
				}
				return
			}

			if _, err := uuid.Parse(id); err != nil {
				t.Fatalf("expected a uuid session id, got %q", id)
			}
			if issued == nil {
				t.Fatal("expected a session cookie to be issued")
			}
			if issued.Value != id {
				t.Errorf("expected cookie value %s, got %s", id, issued.Value)
			}
			if issued.Path != "/" {
				t.Errorf("expected cookie path /, got %s", issued.Path)
			}
			if !issued.HttpOnly {
				t.Error("expected an HttpOnly cookie")
			}
			if issued.SameSite != http.SameSiteLaxMode {
				t.Errorf("expected SameSite=Lax, got %v", issued.SameSite)
			}
		})
	}
}

func TestSessionIDIsUniquePerVisitor(t *testing.T) {
	a := sessionID(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := sessionID(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if a == b {
		t.Errorf("expected distinct sessions, both were %s", a)
	}
}

func TestSendJSON(t *testing.T) {
	w := httptest.NewRecorder()

	err := sendJSON(w, http.StatusCreated, CartLineResponse{ProductID: 3, Name: "Sleeveless Dress", Quantity: 2, Total: "Rs. 2000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var got CartLineResponse
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ProductID != 3 || got.Quantity != 2 || got.Total != "Rs. 2000" {
		t.Errorf("unexpected response %+v", got)
	}
}

func TestSendErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	sendErrorResponse(w, "Product not found", http.StatusNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "Not Found" {
		t.Errorf("expected error 'Not Found', got %q", resp.Error)
	}
	if resp.Message != "Product not found" {
		t.Errorf("expected message 'Product not found', got %q", resp.Message)
	}
}

func TestSendJSONWriteError(t *testing.T) {
	w := &failingWriter{header: make(http.Header)}

	err := sendJSON(w, http.StatusOK, ErrorResponse{Error: "x"})
	if err == nil {
		t.Fatal("expected write error")
	}
	if w.statusCode != http.StatusOK {
		t.Errorf("expected status %d to be written first, got %d", http.StatusOK, w.statusCode)
	}
}

// failingWriter is a ResponseWriter that fails on Write
type failingWriter struct {
	header     http.Header
	statusCode int
}

func (f *failingWriter) Header() http.Header {
	return f.header
}

func (f *failingWriter) Write([]byte) (int, error) {
	return 0, &customError{msg: "write failed"}
}

func (f *failingWriter) WriteHeader(statusCode int) {
	f.statusCode = statusCode
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
