package cookie

import (
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const Type kv.Type = "cookie"

func init() {
	kv.Register(Type, CreateProviderFromOptions)
}

type Options struct {
	// Name of the cookie holding the entries.
	Name string `mapstructure:"name"`
	// SessionStore is injected at setup time and shared with the other
	// cookie based components.
	SessionStore sessions.Store `mapstructure:"sessionStore"`
}

func CreateProviderFromOptions(options any) (kv.Provider, error) {
	opts := Options{
		Name: DefaultName,
	}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' store options", Type)
	}

	if opts.SessionStore == nil {
		return nil, errors.Errorf("'%s' store requires a session store", Type)
	}

	return NewProvider(opts.SessionStore, opts.Name), nil
}
