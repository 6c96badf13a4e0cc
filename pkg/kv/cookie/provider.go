package cookie

import (
	"context"
	"net/http"

	"github.com/bornholm/masthead/pkg/kv"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

const DefaultName = "masthead_storage"

// Provider keeps the entries of a browsing context inside a signed cookie,
// the closest server side equivalent of the browser's local storage.
type Provider struct {
	store sessions.Store
	name  string
}

// Open implements kv.Provider.
func (p *Provider) Open(w http.ResponseWriter, r *http.Request) (kv.Store, error) {
	session, err := p.store.Get(r, p.name)
	if err != nil {
		// An undecodable cookie (rotated keys, tampering) yields a fresh
		// session which will overwrite it on the next save.
		if session == nil {
			return nil, errors.WithStack(err)
		}
	}

	return &Store{
		session: session,
		w:       w,
		r:       r,
	}, nil
}

func NewProvider(store sessions.Store, name string) *Provider {
	return &Provider{
		store: store,
		name:  name,
	}
}

var _ kv.Provider = &Provider{}

type Store struct {
	session *sessions.Session
	w       http.ResponseWriter
	r       *http.Request
}

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	raw, exists := s.session.Values[key]
	if !exists {
		return "", errors.WithStack(kv.ErrNotFound)
	}

	value, ok := raw.(string)
	if !ok {
		return "", errors.Errorf("unexpected value type '%T' for key '%s'", raw, key)
	}

	return value, nil
}

// Set implements kv.Store.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	s.session.Values[key] = value

	if err := s.session.Save(s.r, s.w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	delete(s.session.Values, key)

	if err := s.session.Save(s.r, s.w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

var _ kv.Store = &Store{}
