package setup

import (
	"context"
	"sync"

	"github.com/bornholm/masthead/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes fn per configuration so that components
// shared by several handlers are built a single time.
func createFromConfigOnce[T any](fn func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		mutex   sync.Mutex
		created = map[*config.Config]T{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if value, exists := created[conf]; exists {
			return value, nil
		}

		value, err := fn(ctx, conf)
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		created[conf] = value

		return value, nil
	}
}
