package ui

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/laher/mergefs"
	"github.com/pkg/errors"
)

//go:embed templates/**
var commonFs embed.FS

var commonFuncs = template.FuncMap{
	"menuState": MenuState,
}

var patterns = []string{
	"**/views/*.gohtml",
	"**/layouts/*.gohtml",
}

// Renderer executes the shared layouts merged with the views of a handler.
type Renderer struct {
	tmpl *template.Template
}

// Render executes the named template and writes it with the given status.
// Nothing is written when the execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buff bytes.Buffer

	if err := r.tmpl.ExecuteTemplate(&buff, name, data); err != nil {
		return errors.Wrapf(err, "could not execute template '%s'", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buff.WriteTo(w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// NewRenderer parses the common views and layouts along with the ones of the
// given filesystems. Common files take precedence on identical paths.
// Every filesystem is expected to provide both a views and a layouts
// directory.
func NewRenderer(funcs template.FuncMap, filesystems ...fs.FS) (*Renderer, error) {
	merged := mergefs.Merge(append([]fs.FS{commonFs}, filesystems...)...)

	files := make([]string, 0)
	for _, pattern := range patterns {
		matches, err := fs.Glob(merged, pattern)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		files = append(files, matches...)
	}

	tmpl := template.New("").Funcs(sprig.FuncMap()).Funcs(commonFuncs)

	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}

	tmpl, err := tmpl.ParseFS(merged, files...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

type HeadTemplateData struct {
	PageTitle string
}
