package web

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/masthead/internal/ui"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) servePage(name string, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderPage(w, r, http.StatusOK, name, title)
	}
}

func (h *Handler) serveNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusNotFound, "not_found", "Not found")
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, title string) {
	ctx := r.Context()

	hdr, _, err := h.mount(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not mount header", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("menu") == ui.MenuStateOpen {
		hdr.ToggleMenu()
	}

	data := PageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: title,
		},
		HeaderTemplateData: ui.NewHeaderTemplateData(hdr.View(), r.URL.Path),
	}

	h.render(w, r, status, name, data)
}
