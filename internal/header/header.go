// Package header implements the site header: it reconciles the
// authentication flag with the persisted credential token, handles logout and
// owns the visibility of the burger menu overlay.
//
// A Header is one mount of the component. It is not safe for concurrent use;
// the authentication state it points to is.
package header

import (
	"context"
	"log/slog"

	"github.com/bornholm/masthead/internal/authstate"
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
)

// TokenKey is the store key of the credential token.
const TokenKey = "token"

type Navigator interface {
	NavigateTo(path string)
}

type NavigateFunc func(path string)

func (fn NavigateFunc) NavigateTo(path string) {
	fn(path)
}

type Header struct {
	state     *authstate.State
	store     kv.Store
	navigator Navigator

	brand       string
	menuOpen    bool
	initialized bool
}

// Initialize raises the authentication flag when a credential token is persisted.
// An absent token leaves the flag untouched. Only the first call of a mount
// reads the store.
func (h *Header) Initialize(ctx context.Context) error {
	if h.initialized {
		return nil
	}

	h.initialized = true

	if _, err := h.store.Get(ctx, TokenKey); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			slog.DebugContext(ctx, "no credential token found")
			return nil
		}

		return errors.Wrap(err, "could not read credential token")
	}

	slog.DebugContext(ctx, "credential token found")
	h.state.SetAuthenticated(true)

	return nil
}

// Logout deletes the credential token, lowers the authentication flag and navigates
// to the root route. The flag is lowered even when the token could not be
// deleted, in which case no navigation happens.
func (h *Header) Logout(ctx context.Context) error {
	if err := h.store.Delete(ctx, TokenKey); err != nil {
		h.state.SetAuthenticated(false)
		slog.ErrorContext(ctx, "could not delete credential token", log.Error(errors.WithStack(err)))
		return errors.Wrap(err, "could not delete credential token")
	}

	h.state.SetAuthenticated(false)

	slog.DebugContext(ctx, "logged out")

	h.navigator.NavigateTo(RouteHome)

	return nil
}

func (h *Header) ToggleMenu() {
	h.menuOpen = !h.menuOpen
}

func (h *Header) MenuOpen() bool {
	return h.menuOpen
}

func (h *Header) IsAuthenticated() bool {
	return h.state.IsAuthenticated()
}

// Follow selects a navigation item and returns its target. Items of the
// overlay menu close it as part of the same interaction.
func (h *Header) Follow(item Item) string {
	if item.InMenu && h.menuOpen {
		h.ToggleMenu()
	}

	return item.Path
}

func (h *Header) View() View {
	return Render(h.brand, h.state.IsAuthenticated(), h.menuOpen)
}

func New(state *authstate.State, store kv.Store, navigator Navigator, funcs ...OptionFunc) *Header {
	opts := NewOptions(funcs...)

	return &Header{
		state:     state,
		store:     store,
		navigator: navigator,
		brand:     opts.Brand,
		menuOpen:  opts.MenuOpen,
	}
}
