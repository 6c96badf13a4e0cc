package sqlite

import (
	"context"
	"net/http"
	"time"

	"github.com/bornholm/masthead/pkg/kv"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Provider persists entries in a sqlite database, partitioned by the scope
// of the browsing context.
type Provider struct {
	pool *sqlitemigration.Pool
}

// Open implements kv.Provider.
func (p *Provider) Open(w http.ResponseWriter, r *http.Request) (kv.Store, error) {
	scope, err := kv.ContextScope(r.Context())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Store{
		scope:    scope,
		provider: p,
	}, nil
}

// HealthCheck implements kv.HealthChecker.
func (p *Provider) HealthCheck(ctx context.Context) error {
	conn, err := p.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer p.pool.Put(conn)

	if err := p.pool.CheckHealth(); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (p *Provider) Close() error {
	return errors.WithStack(p.pool.Close())
}

func (p *Provider) do(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := p.pool.Take(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	defer p.pool.Put(conn)

	if err := fn(conn); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewProvider(pool *sqlitemigration.Pool) *Provider {
	return &Provider{
		pool: pool,
	}
}

var (
	_ kv.Provider      = &Provider{}
	_ kv.HealthChecker = &Provider{}
)

type Store struct {
	scope    string
	provider *Provider
}

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var (
		value  string
		exists bool
	)

	err := s.provider.do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `SELECT value FROM entries WHERE scope = ? AND key = ?`, &sqlitex.ExecOptions{
			Args: []any{s.scope, key},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				value = stmt.ColumnText(0)
				exists = true
				return nil
			},
		}))
	})
	if err != nil {
		return "", errors.WithStack(err)
	}

	if !exists {
		return "", errors.WithStack(kv.ErrNotFound)
	}

	return value, nil
}

// Set implements kv.Store.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	return s.provider.do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `
			INSERT INTO entries (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, &sqlitex.ExecOptions{
			Args: []any{s.scope, key, value, time.Now().UTC().Unix()},
		}))
	})
}

// Delete implements kv.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.provider.do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `DELETE FROM entries WHERE scope = ? AND key = ?`, &sqlitex.ExecOptions{
			Args: []any{s.scope, key},
		}))
	})
}

var _ kv.Store = &Store{}
