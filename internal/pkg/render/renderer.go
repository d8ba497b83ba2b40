package render

import (
	"bytes"
	"html/template"
	"path/filepath"
)

// IRenderer is the page/partial templating collaborator. The wizard engine
// only ever needs rendered strings: full pages for classic responses, named
// partials for the fragment (AJAX) upload protocol.
type IRenderer interface {
	Render(name string, data interface{}) (string, error)
}

type htmlRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer(dir string) (IRenderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &htmlRenderer{templates: t}, nil
}

func (r *htmlRenderer) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
