package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/automationexercise/shopcheck/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var templateFuncs = template.FuncMap{
	"formatPrice": models.FormatPrice,
	"inc":         func(i int) int { return i + 1 },
	"seq":         seq,
}

// Renderer executes the storefront pages. Each page template is parsed together with the
// shared layout and executed through it.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ in fsys
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	if len(r.pages) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return r, nil
}

// DefaultRenderer returns a Renderer over the embedded storefront templates
func DefaultRenderer() (*Renderer, error) {
	return NewRenderer(templateFS)
}

// Render writes page with status. Nothing is written when an error is returned, so the
// caller can still send an error response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// the client may have gone away; there is nobody left to tell
	_, _ = buf.WriteTo(w)
	return nil
}

// seq returns the integers from first to last inclusive, counting down when last < first
func seq(first, last int) []int {
	step := 1
	if last < first {
		step = -1
	}
	out := make([]int, 0, (last-first)*step+1)
	for i := first; ; i += step {
		out = append(out, i)
		if i == last {
			return out
		}
	}
}
