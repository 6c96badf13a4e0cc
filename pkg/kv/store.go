// Package kv describes the durable key-value store scoped to a browsing
// context in which the credential token is persisted.
package kv

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrMissingScope = errors.New("missing scope")
)

// Store is a key-value store bound to a single browsing context.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error
}

// Provider opens the store of the browsing context a request belongs to.
// Stores opened with a response writer may write headers (cookies) and must
// be used before the response body is written.
type Provider interface {
	Open(w http.ResponseWriter, r *http.Request) (Store, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
