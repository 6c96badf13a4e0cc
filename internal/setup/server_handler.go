package setup

import (
	"context"
	"expvar"
	"log/slog"
	"net/http"

	"github.com/bornholm/masthead/internal/authstate"
	"github.com/bornholm/masthead/internal/browser"
	"github.com/bornholm/masthead/internal/config"
	"github.com/bornholm/masthead/internal/pprof"
	"github.com/bornholm/masthead/internal/ratelimit"
	"github.com/bornholm/masthead/internal/web"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

const debugPrefix = "/debug/pprof"

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	provider, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slogMiddleware := sloghttp.New(slog.Default())

	browserMiddleware := browser.Middleware(sessionStore)

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	rateLimiterMiddleware := rateLimiter.Middleware(browser.ClientKey)

	registry := authstate.NewRegistry()

	webHandler := web.NewHandler(
		registry,
		provider,
		web.WithBrand(string(conf.Header.Brand)),
	)

	handler := slogMiddleware(browserMiddleware(rateLimiterMiddleware(webHandler)))

	if !conf.HTTP.Debug {
		return handler, nil
	}

	slog.WarnContext(ctx, "debug endpoints enabled", slog.String("prefix", debugPrefix))

	mux := &http.ServeMux{}

	mux.Handle(debugPrefix+"/", pprof.NewHandler(debugPrefix,
		pprof.WithVar("browsers", expvar.Func(func() any {
			total, authenticated := registry.Stats()
			return map[string]int{
				"total":         total,
				"authenticated": authenticated,
			}
		})),
	))
	mux.Handle("/", handler)

	return mux, nil
}
