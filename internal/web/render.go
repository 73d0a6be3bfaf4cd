package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome     = "home.html"
	pageGuitars  = "guitars.html"
	pageGuitar   = "guitar.html"
	pageCompare  = "compare.html"
	pageNotFound = "notfound.html"
	pageError    = "error.html"
)

// meta is the per-page document metadata rendered into <head>.
type meta struct {
	Title       string
	Description string
	Canonical   string
	SiteName    string
}

type document struct {
	Meta    meta
	Content any
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	names := []string{pageHome, pageGuitars, pageGuitar, pageCompare, pageNotFound, pageError}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages}, nil
}

// render executes the page into a buffer first so a template failure never
// leaves a half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, page string, doc document) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", doc); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
