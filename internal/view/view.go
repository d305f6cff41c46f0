// Package view renders the HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

const layout = "default"

// Views rendered by the handlers
const (
	Index  = "index"
	Search = "search"
)

// Renderer holds one parsed template set per view
type Renderer struct {
	views map[string]*template.Template
}

// NewRenderer parses the layout together with every view
func NewRenderer() (*Renderer, error) {
	r := &Renderer{views: make(map[string]*template.Template)}

	for _, name := range []string{Index, Search} {
		tmpl, err := template.ParseFS(templateFS, "templates/"+layout+".html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing view %s: %w", name, err)
		}
		r.views[name] = tmpl
	}

	return r, nil
}

// Render executes the named view into a buffer and writes it with status.
// Nothing is written if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("rendering view %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
