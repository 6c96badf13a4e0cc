package setup

import (
	"context"
	"log/slog"
	"maps"

	"github.com/bornholm/masthead/internal/config"
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/bornholm/masthead/pkg/kv/cookie"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (kv.Provider, error) {
	typ := kv.Type(conf.Store.Type)

	options := map[string]any{}
	if conf.Store.Options != nil {
		maps.Copy(options, conf.Store.Options.Data)
	}

	if typ == cookie.Type {
		sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		options["sessionStore"] = sessionStore
	}

	provider, err := kv.New(typ, options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' store", typ)
	}

	if checker, ok := provider.(kv.HealthChecker); ok {
		if err := checker.HealthCheck(ctx); err != nil {
			return nil, errors.Wrapf(err, "'%s' store is not healthy", typ)
		}
	}

	slog.DebugContext(ctx, "token store ready", slog.String("type", string(typ)))

	return provider, nil
})
