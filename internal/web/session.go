package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/masthead/internal/browser"
	"github.com/bornholm/masthead/internal/header"
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
)

// handleToken completes a login performed by an external identity service:
// the issued token is persisted and the authentication flag raised.
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	token := strings.TrimSpace(r.PostForm.Get("token"))
	if token == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	browserID, err := browser.ContextID(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not retrieve browser id", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	store, err := h.provider.Open(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not open store", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := store.Set(ctx, header.TokenKey, token); err != nil {
		slog.ErrorContext(ctx, "could not store credential token", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.registry.State(browserID).SetAuthenticated(true)

	slog.InfoContext(ctx, "user logged in")

	nav := &navigator{w: w, r: r}
	nav.NavigateTo(header.RouteProfile)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if checker, ok := h.provider.(kv.HealthChecker); ok {
		if err := checker.HealthCheck(ctx); err != nil {
			slog.ErrorContext(ctx, "store health check failed", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
