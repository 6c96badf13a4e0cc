// Package browser identifies the browsing context a request belongs to with
// a long lived signed cookie.
package browser

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/masthead/pkg/kv"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const (
	DefaultSessionName = "masthead_browser"
	idKey              = "id"
)

type Options struct {
	SessionName string
}

type OptionFunc func(opts *Options)

func WithSessionName(name string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = name
	}
}

// Middleware resolves the browser id of the request, issuing a new one when
// the cookie is missing or cannot be decoded. The id is attached to the
// request context, to the store scope and to the log attributes.
func Middleware(store sessions.Store, funcs ...OptionFunc) func(http.Handler) http.Handler {
	opts := &Options{
		SessionName: DefaultSessionName,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := store.Get(r, opts.SessionName)
			if err != nil {
				slog.DebugContext(ctx, "could not decode browser session, issuing a new one", log.Error(errors.WithStack(err)))
			}

			if session == nil {
				slog.ErrorContext(ctx, "could not retrieve browser session", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			issued := false

			id, _ := session.Values[idKey].(string)
			if _, parseErr := xid.FromString(id); parseErr != nil {
				issued = true
				id = xid.New().String()
				session.Values[idKey] = id

				if err := session.Save(r, w); err != nil {
					slog.ErrorContext(ctx, "could not save browser session", log.Error(errors.WithStack(err)))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			ctx = WithContextID(ctx, id)
			ctx = withIssued(ctx, issued)
			ctx = kv.WithScope(ctx, id)
			ctx = log.WithAttrs(ctx, slog.String("browser", id))

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
