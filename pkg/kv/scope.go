package kv

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeyScope contextKey = "kvScope"

// WithScope attaches the identifier of the browsing context to ctx. Server
// side providers partition their entries with it.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, contextKeyScope, scope)
}

func ContextScope(ctx context.Context) (string, error) {
	scope, ok := ctx.Value(contextKeyScope).(string)
	if !ok || scope == "" {
		return "", errors.WithStack(ErrMissingScope)
	}

	return scope, nil
}
