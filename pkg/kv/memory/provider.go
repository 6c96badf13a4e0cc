package memory

import (
	"context"
	"net/http"

	"github.com/bornholm/masthead/internal/syncx"
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/pkg/errors"
)

type entryKey struct {
	scope string
	key   string
}

// Provider keeps entries in process memory. Entries do not survive a
// restart.
type Provider struct {
	entries *syncx.Map[entryKey, string]
}

// Open implements kv.Provider.
func (p *Provider) Open(w http.ResponseWriter, r *http.Request) (kv.Store, error) {
	scope, err := kv.ContextScope(r.Context())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return p.Scoped(scope), nil
}

// Scoped returns the store of the given browsing context.
func (p *Provider) Scoped(scope string) *Store {
	return &Store{
		scope:   scope,
		entries: p.entries,
	}
}

func NewProvider() *Provider {
	return &Provider{
		entries: &syncx.Map[entryKey, string]{},
	}
}

var _ kv.Provider = &Provider{}

type Store struct {
	scope   string
	entries *syncx.Map[entryKey, string]
}

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, exists := s.entries.Load(entryKey{s.scope, key})
	if !exists {
		return "", errors.WithStack(kv.ErrNotFound)
	}

	return value, nil
}

// Set implements kv.Store.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	s.entries.Store(entryKey{s.scope, key}, value)
	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.entries.Delete(entryKey{s.scope, key})
	return nil
}

var _ kv.Store = &Store{}
