// Package web holds the server-rendered page.
package web

import (
	"embed"
	"html/template"

	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/studio"
)

// Placeholder is shown when no ideas, error or request is on the page.
const Placeholder = "Your brilliant content ideas will appear here!"

// PageTemplate is the name of the page template.
const PageTemplate = "index.html"

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data passed to the page template.
type Page struct {
	State       studio.State
	Platforms   []domain.Platform
	Placeholder string
}

// NewPage builds the page data for state.
func NewPage(state studio.State) Page {
	return Page{
		State:       state,
		Platforms:   domain.Platforms,
		Placeholder: Placeholder,
	}
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"platformLabel": func(p domain.Platform) string { return p.Label() },
	}).ParseFS(templateFS, "templates/*.html")
}
