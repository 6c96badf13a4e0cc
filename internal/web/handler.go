package web

import (
	"net/http"

	"github.com/bornholm/masthead/internal/authstate"
	"github.com/bornholm/masthead/internal/header"
	"github.com/bornholm/masthead/pkg/kv"
)

type Handler struct {
	mux      *http.ServeMux
	registry *authstate.Registry
	provider kv.Provider
	brand    string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(registry *authstate.Registry, provider kv.Provider, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	handler := &Handler{
		mux:      &http.ServeMux{},
		registry: registry,
		provider: provider,
		brand:    opts.Brand,
	}

	// Pages
	handler.mux.HandleFunc("GET /{$}", handler.servePage("home", ""))
	handler.mux.HandleFunc("GET "+header.RouteProfile, handler.servePage("landing", "Profile"))
	handler.mux.HandleFunc("GET "+header.RouteLogin, handler.servePage("login", "Login"))
	handler.mux.HandleFunc("GET "+header.RouteRegister, handler.servePage("register", "Register"))
	handler.mux.HandleFunc("GET /", handler.serveNotFound)

	// Header interactions
	handler.mux.HandleFunc("POST "+header.RouteLogout, handler.handleLogout)
	handler.mux.HandleFunc("POST "+header.RouteMenu, handler.handleMenu)
	handler.mux.HandleFunc("POST "+header.RouteFollow, handler.handleFollow)

	// Login completion, the token being issued by an external identity service
	handler.mux.HandleFunc("POST "+RouteToken, handler.handleToken)

	handler.mux.HandleFunc("GET "+RouteHealth, handler.handleHealth)

	return handler
}

var _ http.Handler = &Handler{}
