package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio-backend/internal/server"
)

//go:embed templates/*.html
var pageFS embed.FS

const (
	indexPage = "index.html"
	adminPage = "admin.html"
)

// TemplateRenderer renders the embedded site pages. It implements echo.Renderer.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	templates, err := template.ParseFS(pageFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	for _, name := range []string{indexPage, adminPage} {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("page template %s is missing", name)
		}
	}

	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// PageHandler serves the public landing page and the admin page. Both are
// static shells that talk to the JSON API from the browser.
type PageHandler struct {
	Handler
	Renderer *TemplateRenderer
}

func NewPageHandler(s *server.Server) (*PageHandler, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		Handler:  NewHandler(s),
		Renderer: renderer,
	}, nil
}

func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, indexPage, nil)
}

func (h *PageHandler) Admin(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Render(http.StatusOK, adminPage, nil)
}
