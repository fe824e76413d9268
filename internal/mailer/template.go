// Package mailer composes and delivers the templated contact-acknowledgement
// emails triggered by contact-form submissions.
package mailer

import (
	"embed"
	"html/template"
	"strings"

	"github.com/rotisserie/eris"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateData is the context every email template renders with.
type TemplateData struct {
	Name          string
	Email         string
	Message       string
	Category      string
	CategoryLabel string
	Link          string
	Year          int
}

// Renderer renders the embedded email templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, eris.Wrap(err, "mailer: parse templates")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render renders the named template to an HTML string.
func (r *Renderer) Render(name string, data TemplateData) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", eris.Wrapf(err, "mailer: render %s", name)
	}
	return sb.String(), nil
}
