package browser

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeyID contextKey = "browserID"

var ErrNoBrowserID = errors.New("no browser id in context")

func ContextID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(contextKeyID).(string)
	if !ok || id == "" {
		return "", errors.WithStack(ErrNoBrowserID)
	}

	return id, nil
}

func WithContextID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyID, id)
}

const contextKeyIssued contextKey = "browserIDIssued"

// ContextIssued reports whether the browser id of the context was issued by
// the current request, the client having sent no valid browser cookie.
func ContextIssued(ctx context.Context) bool {
	issued, _ := ctx.Value(contextKeyIssued).(bool)
	return issued
}

func withIssued(ctx context.Context, issued bool) context.Context {
	return context.WithValue(ctx, contextKeyIssued, issued)
}
