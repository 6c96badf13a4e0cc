package testsuite

import (
	"context"

	"github.com/bornholm/masthead/pkg/kv"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

func GetMissingKey(ctx context.Context, provider kv.Provider) error {
	browser := NewBrowser(xid.New().String())

	return browser.Do(ctx, provider, func(store kv.Store) error {
		return expectMissing(ctx, store, "token")
	})
}

func SetThenGet(ctx context.Context, provider kv.Provider) error {
	browser := NewBrowser(xid.New().String())

	if err := browser.Do(ctx, provider, func(store kv.Store) error {
		return errors.WithStack(store.Set(ctx, "token", "abc123"))
	}); err != nil {
		return errors.WithStack(err)
	}

	return browser.Do(ctx, provider, func(store kv.Store) error {
		return expectValue(ctx, store, "token", "abc123")
	})
}

func Overwrite(ctx context.Context, provider kv.Provider) error {
	browser := NewBrowser(xid.New().String())

	for _, value := range []string{"first", "second"} {
		if err := browser.Do(ctx, provider, func(store kv.Store) error {
			return errors.WithStack(store.Set(ctx, "token", value))
		}); err != nil {
			return errors.WithStack(err)
		}
	}

	return browser.Do(ctx, provider, func(store kv.Store) error {
		return expectValue(ctx, store, "token", "second")
	})
}

func DeleteKey(ctx context.Context, provider kv.Provider) error {
	browser := NewBrowser(xid.New().String())

	if err := browser.Do(ctx, provider, func(store kv.Store) error {
		if err := store.Set(ctx, "token", "abc123"); err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(store.Set(ctx, "other", "kept"))
	}); err != nil {
		return errors.WithStack(err)
	}

	if err := browser.Do(ctx, provider, func(store kv.Store) error {
		return errors.WithStack(store.Delete(ctx, "token"))
	}); err != nil {
		return errors.WithStack(err)
	}

	return browser.Do(ctx, provider, func(store kv.Store) error {
		if err := expectMissing(ctx, store, "token"); err != nil {
			return errors.WithStack(err)
		}

		return expectValue(ctx, store, "other", "kept")
	})
}

func DeleteMissingKey(ctx context.Context, provider kv.Provider) error {
	browser := NewBrowser(xid.New().String())

	for i := 0; i < 2; i++ {
		if err := browser.Do(ctx, provider, func(store kv.Store) error {
			return errors.WithStack(store.Delete(ctx, "token"))
		}); err != nil {
			return errors.WithStack(err)
		}
	}

	return browser.Do(ctx, provider, func(store kv.Store) error {
		return expectMissing(ctx, store, "token")
	})
}

func IsolatedBrowsingContexts(ctx context.Context, provider kv.Provider) error {
	alice := NewBrowser(xid.New().String())
	bob := NewBrowser(xid.New().String())

	if err := alice.Do(ctx, provider, func(store kv.Store) error {
		return errors.WithStack(store.Set(ctx, "token", "alice"))
	}); err != nil {
		return errors.WithStack(err)
	}

	return bob.Do(ctx, provider, func(store kv.Store) error {
		return expectMissing(ctx, store, "token")
	})
}

func expectValue(ctx context.Context, store kv.Store, key string, expected string) error {
	value, err := store.Get(ctx, key)
	if err != nil {
		return errors.WithStack(err)
	}

	if e, g := expected, value; e != g {
		return errors.Errorf("store.Get(\"%s\"): expected '%s', got '%s'", key, e, g)
	}

	return nil
}

func expectMissing(ctx context.Context, store kv.Store, key string) error {
	value, err := store.Get(ctx, key)
	if !errors.Is(err, kv.ErrNotFound) {
		return errors.Errorf("store.Get(\"%s\"): expected kv.ErrNotFound, got value '%s' and error '%v'", key, value, err)
	}

	return nil
}
