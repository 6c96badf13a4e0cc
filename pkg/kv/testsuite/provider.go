package testsuite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bornholm/masthead/pkg/kv"
	"github.com/pkg/errors"
)

type providerTestCase struct {
	Name string
	Run  func(ctx context.Context, provider kv.Provider) error
}

var providerTestCases = []providerTestCase{
	{
		Name: "GetMissingKey",
		Run:  GetMissingKey,
	},
	{
		Name: "SetThenGet",
		Run:  SetThenGet,
	},
	{
		Name: "Overwrite",
		Run:  Overwrite,
	},
	{
		Name: "DeleteKey",
		Run:  DeleteKey,
	},
	{
		Name: "DeleteMissingKey",
		Run:  DeleteMissingKey,
	},
	{
		Name: "IsolatedBrowsingContexts",
		Run:  IsolatedBrowsingContexts,
	},
}

func TestProvider(t *testing.T, typ kv.Type, opts any) {
	t.Logf("Using store provider '%s'", typ)

	provider, err := kv.New(typ, opts)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for _, tc := range providerTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			if err := tc.Run(context.Background(), provider); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}
		})
	}
}

// Browser replays the cookies a provider emits across successive requests
// made under the same scope.
type Browser struct {
	scope   string
	cookies map[string]*http.Cookie
}

func NewBrowser(scope string) *Browser {
	return &Browser{
		scope:   scope,
		cookies: map[string]*http.Cookie{},
	}
}

// Do opens the store of the browser for a single request and runs fn with
// it.
func (b *Browser) Do(ctx context.Context, provider kv.Provider, fn func(store kv.Store) error) error {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	req = req.WithContext(kv.WithScope(ctx, b.scope))

	rec := httptest.NewRecorder()

	store, err := provider.Open(rec, req)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := fn(store); err != nil {
		return errors.WithStack(err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}

		b.cookies[c.Name] = c
	}

	return nil
}
