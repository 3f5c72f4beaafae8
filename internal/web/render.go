// Package web renders console pages inside the shared shell layout.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login", "dashboard", "crud"}

// MenuItem is one sidebar link.
type MenuItem struct {
	Href  string
	Label string
}

// MenuLink is a MenuItem as rendered for the current request.
type MenuLink struct {
	MenuItem
	Active bool
}

// Page is the data handed to the layout template.
type Page struct {
	Title  string
	Viewer string
	Menu   []MenuLink
	Flash  *Flash
	Bare   bool // no sidebar, used by the login page
	Body   any
}

type Renderer struct {
	templates map[string]*template.Template
	menu      []MenuItem
	viewer    func(ctx context.Context) string
	logger    *slog.Logger
}

// NewRenderer parses every page template with the layout. viewer returns the
// name shown in the sidebar welcome line.
func NewRenderer(menu []MenuItem, viewer func(ctx context.Context) string, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"lower": strings.ToLower,
	}
	r := &Renderer{templates: make(map[string]*template.Template), menu: menu, viewer: viewer, logger: logger}
	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes page inside the shell layout.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, body any) {
	rd.render(w, r, status, page, Page{Title: title, Body: body})
}

// RenderBare writes page without the sidebar.
func (rd *Renderer) RenderBare(w http.ResponseWriter, r *http.Request, status int, page, title string, body any) {
	rd.render(w, r, status, page, Page{Title: title, Body: body, Bare: true})
}

func (rd *Renderer) render(w http.ResponseWriter, r *http.Request, status int, page string, p Page) {
	t, ok := rd.templates[page]
	if !ok {
		rd.logger.ErrorContext(r.Context(), "unknown template", slog.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	p.Flash = FlashFrom(r.Context())
	if !p.Bare {
		p.Viewer = rd.viewer(r.Context())
		p.Menu = make([]MenuLink, len(rd.menu))
		for i, item := range rd.menu {
			p.Menu[i] = MenuLink{MenuItem: item, Active: item.Href == r.URL.Path}
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		rd.logger.ErrorContext(r.Context(), "render template", slog.String("page", page), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
