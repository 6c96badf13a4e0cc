package web

import (
	"embed"
	"log/slog"
	"net/http"

	"github.com/bornholm/masthead/internal/ui"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var renderer *ui.Renderer

func init() {
	r, err := ui.NewRenderer(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	renderer = r
}

// PageTemplateData contains the data shared by every page
type PageTemplateData struct {
	ui.HeadTemplateData
	ui.HeaderTemplateData
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := renderer.Render(w, status, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not render template", slog.String("template", name), log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
