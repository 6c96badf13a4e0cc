package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/masthead/internal/config"
	"github.com/pkg/errors"

	_ "github.com/bornholm/masthead/pkg/kv/all"
)

func TestNewHandlerFromConfig(t *testing.T) {
	ctx := context.Background()

	conf := newTestConfig(t)
	conf.HTTP.Session.Keys = config.InterpolatedStringSlice{"secret"}
	conf.Store.Type = "memory"
	conf.Header.Brand = "Masthead"

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(res.Body.String(), ">Masthead</a>") {
		t.Errorf("expected configured brand in body")
	}

	if len(res.Result().Cookies()) == 0 {
		t.Errorf("expected browser cookie to be issued")
	}
}

func TestNewStoreFromConfigIsShared(t *testing.T) {
	ctx := context.Background()

	conf := newTestConfig(t)
	conf.HTTP.Session.Keys = config.InterpolatedStringSlice{"secret"}
	conf.Store.Type = "cookie"

	first, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	second, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if first != second {
		t.Errorf("expected the same provider to be returned")
	}
}

func TestNewStoreFromConfigUnknownType(t *testing.T) {
	conf := newTestConfig(t)
	conf.Store.Type = "unknown"

	if _, err := NewStoreFromConfig(context.Background(), conf); err == nil {
		t.Errorf("expected an error")
	}
}

func TestDeriveKeyIsStable(t *testing.T) {
	first, err := deriveKey([]byte("secret"), hashKeyInfo, 64)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	second, err := deriveKey([]byte("secret"), hashKeyInfo, 64)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if string(first) != string(second) {
		t.Errorf("expected derived keys to match")
	}

	other, err := deriveKey([]byte("secret"), blockKeyInfo, 64)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if string(first) == string(other) {
		t.Errorf("expected derived keys to differ per usage")
	}
}

func TestNewHandlerFromConfigDebug(t *testing.T) {
	ctx := context.Background()

	conf := newTestConfig(t)
	conf.HTTP.Session.Keys = config.InterpolatedStringSlice{"secret"}
	conf.Store.Type = "memory"
	conf.HTTP.Debug = true

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/state", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(res.Body.String(), `"browsers"`) {
		t.Errorf("expected browsers variable in body, got '%s'", res.Body.String())
	}
}

func newTestConfig(t *testing.T) *config.Config {
	conf := config.NewDefaultConfig()

	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return conf
}

func TestCookieLessClientsAreRateLimited(t *testing.T) {
	ctx := context.Background()

	conf := newTestConfig(t)
	conf.HTTP.Session.Keys = config.InterpolatedStringSlice{"secret"}
	conf.Store.Type = "memory"
	conf.HTTP.RateLimit.Rate = 1
	conf.HTTP.RateLimit.Burst = 1

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	limited := 0

	for idx := 0; idx < 20; idx++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if res.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	if limited == 0 {
		t.Errorf("expected cookie-less requests to be rate limited")
	}
}
