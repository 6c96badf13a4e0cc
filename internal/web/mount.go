package web

import (
	"net/http"

	"github.com/bornholm/masthead/internal/browser"
	"github.com/bornholm/masthead/internal/header"
	"github.com/pkg/errors"
)

// navigator redirects the browser. HTMX requests are answered with a
// client side location change instead of a redirect.
type navigator struct {
	w         http.ResponseWriter
	r         *http.Request
	navigated bool
}

// NavigateTo implements header.Navigator.
func (n *navigator) NavigateTo(path string) {
	n.navigated = true

	if isHTMXRequest(n.r) {
		n.w.Header().Set(headerHXLocation, path)
		n.w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}

var _ header.Navigator = &navigator{}

// mount creates and initializes the header of the current request.
func (h *Handler) mount(w http.ResponseWriter, r *http.Request, funcs ...header.OptionFunc) (*header.Header, *navigator, error) {
	ctx := r.Context()

	browserID, err := browser.ContextID(ctx)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	store, err := h.provider.Open(w, r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not open store")
	}

	nav := &navigator{w: w, r: r}

	funcs = append([]header.OptionFunc{header.WithBrand(h.brand)}, funcs...)

	hdr := header.New(h.registry.State(browserID), store, nav, funcs...)

	if err := hdr.Initialize(ctx); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return hdr, nav, nil
}
