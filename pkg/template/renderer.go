package template

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
)

type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template under dir, including components.
func NewRenderer(dir string) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	t, err = t.ParseGlob(filepath.Join(dir, "components", "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		if !strings.Contains(err.Error(), "broken pipe") {
			log.Printf("Error executing template %s: %v", name, err)
		}
		return err
	}
	return nil
}
