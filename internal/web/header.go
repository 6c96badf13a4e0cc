package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bornholm/masthead/internal/header"
	"github.com/bornholm/masthead/internal/ui"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hdr, _, err := h.mount(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not mount header", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := hdr.Logout(ctx); err != nil {
		slog.ErrorContext(ctx, "could not log out", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "user logged out")
}

// handleMenu toggles the menu of a header mounted in the posted state and
// answers with the updated header.
func (h *Handler) handleMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	currentPath := localPath(r.Form.Get("path"))
	wasOpen := r.Form.Get("menu") == ui.MenuStateOpen

	hdr, nav, err := h.mount(w, r, header.WithMenuOpen(wasOpen))
	if err != nil {
		slog.ErrorContext(ctx, "could not mount header", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	hdr.ToggleMenu()

	if !isHTMXRequest(r) {
		target := currentPath
		if hdr.MenuOpen() {
			query := url.Values{}
			query.Set("menu", ui.MenuStateOpen)
			target += "?" + query.Encode()
		}

		nav.NavigateTo(target)
		return
	}

	h.render(w, r, http.StatusOK, "header", ui.NewHeaderTemplateData(hdr.View(), currentPath))
}

// handleFollow selects an overlay menu item, closing the menu, then
// navigates to its target. Only items of the current view can be followed.
func (h *Handler) handleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	wasOpen := r.Form.Get("menu") == ui.MenuStateOpen
	to := r.Form.Get("to")

	hdr, nav, err := h.mount(w, r, header.WithMenuOpen(wasOpen))
	if err != nil {
		slog.ErrorContext(ctx, "could not mount header", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var (
		selected header.Item
		found    bool
	)

	for _, item := range hdr.View().Menu.Items() {
		if item.Kind == header.ItemLink && item.Path == to {
			selected = item
			found = true
			break
		}
	}

	if !found {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	nav.NavigateTo(hdr.Follow(selected))
}

// localPath only keeps absolute paths of this site.
func localPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return header.RouteHome
	}

	return u.Path
}
