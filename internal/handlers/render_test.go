package handlers

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/automationexercise/shopcheck/internal/services"
)

func TestDefaultRenderer(t *testing.T) {
	r, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, page := range []string{
		"home", "products", "product_details", "login", "signup",
		"account_created", "account_deleted", "cart",
	} {
		if _, ok := r.pages[page]; !ok {
			t.Errorf("page %q not parsed", page)
		}
	}
	if _, ok := r.pages["layout"]; ok {
		t.Error("layout should not be a page of its own")
	}
}

func TestNewRenderer(t *testing.T) {
	layout := &fstest.MapFile{Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)}

	tests := []struct {
		name    string
		fsys    fstest.MapFS
		wantErr bool
	}{
		{
			name: "layout and page",
			fsys: fstest.MapFS{
				"templates/layout.html": layout,
				"templates/home.html":   {Data: []byte(`{{define "content"}}hi{{end}}`)},
			},
		},
		{
			name:    "no pages",
			fsys:    fstest.MapFS{"templates/layout.html": layout},
			wantErr: true,
		},
		{
			name: "missing layout",
			fsys: fstest.MapFS{
				"templates/home.html": {Data: []byte(`{{define "content"}}hi{{end}}`)},
			},
			wantErr: true,
		},
		{
			name: "malformed page",
			fsys: fstest.MapFS{
				"templates/layout.html": layout,
				"templates/home.html":   {Data: []byte(`{{define "content"}}{{.Broken{{end}}`)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.fsys)

			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && r != nil {
				t.Error("expected nil renderer when error occurs")
			}
		})
	}
}

func TestRender_TemplateExecutionError(t *testing.T) {
	renderer, err := NewRenderer(fstest.MapFS{
		"templates/layout.html": {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
		"templates/home.html":   {Data: []byte(`{{define "content"}}{{.InvalidField.NonExistent}}{{end}}`)},
	})
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	site := NewSite(renderer, services.NewMemorySessionStore(), &MockAccountService{}, nil)

	w := httptest.NewRecorder()
	site.render(w, http.StatusOK, "home", struct{ Layout }{})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	renderer, err := DefaultRenderer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	if err := renderer.Render(w, http.StatusOK, "checkout", nil); err == nil {
		t.Error("expected error for unknown page")
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %q", w.Body.String())
	}
}

func TestSeq(t *testing.T) {
	tests := []struct {
		first, last int
		want        []int
	}{
		{1, 3, []int{1, 2, 3}},
		{3, 1, []int{3, 2, 1}},
		{5, 5, []int{5}},
	}

	for _, tt := range tests {
		if got := seq(tt.first, tt.last); !slices.Equal(got, tt.want) {
			t.Errorf("seq(%d, %d) = %v, want %v", tt.first, tt.last, got, tt.want)
		}
	}
}
