package header

import (
	"context"
	"fmt"
	"testing"

	"github.com/bornholm/masthead/internal/authstate"
	"github.com/bornholm/masthead/pkg/kv"
	"github.com/bornholm/masthead/pkg/kv/memory"
	"github.com/pkg/errors"
)

type recordingNavigator struct {
	paths []string
}

func (n *recordingNavigator) NavigateTo(path string) {
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Current() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type countingStore struct {
	kv.Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, key string) (string, error) {
	s.gets++
	return s.Store.Get(ctx, key)
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingStore) Set(ctx context.Context, key string, value string) error {
	return errors.New("storage unavailable")
}

func (failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}

func newStore(t *testing.T, token string) kv.Store {
	store := memory.NewProvider().Scoped("browser")

	if token != "" {
		if err := store.Set(context.Background(), TokenKey, token); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return store
}

func TestInitialize(t *testing.T) {
	type testCase struct {
		Token    string
		Initial  bool
		Expected bool
	}

	testCases := []testCase{
		{Token: "abc123", Initial: false, Expected: true},
		{Token: "abc123", Initial: true, Expected: true},
		{Token: "", Initial: false, Expected: false},
		{Token: "", Initial: true, Expected: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			ctx := context.Background()

			state := authstate.New()
			state.SetAuthenticated(tc.Initial)

			h := New(state, newStore(t, tc.Token), &recordingNavigator{})

			if err := h.Initialize(ctx); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, state.IsAuthenticated(); e != g {
				t.Errorf("state.IsAuthenticated(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestInitializeRunsOncePerMount(t *testing.T) {
	ctx := context.Background()

	store := &countingStore{Store: newStore(t, "abc123")}
	h := New(authstate.New(), store, &recordingNavigator{})

	for i := 0; i < 3; i++ {
		if err := h.Initialize(ctx); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if e, g := 1, store.gets; e != g {
		t.Errorf("store.Get() calls: expected '%v', got '%v'", e, g)
	}
}

func TestInitializeDoesNotLowerFlag(t *testing.T) {
	ctx := context.Background()

	state := authstate.New()
	store := newStore(t, "abc123")

	if err := New(state, store, &recordingNavigator{}).Initialize(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// The token disappears behind the header's back (another tab, expiry).
	if err := store.Delete(ctx, TokenKey); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := New(state, store, &recordingNavigator{}).Initialize(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !state.IsAuthenticated() {
		t.Errorf("state.IsAuthenticated(): expected the flag to stay raised until logout")
	}
}

func TestInitializeStoreFailure(t *testing.T) {
	state := authstate.New()
	h := New(state, failingStore{}, &recordingNavigator{})

	if err := h.Initialize(context.Background()); err == nil {
		t.Fatalf("expected an error")
	}

	if state.IsAuthenticated() {
		t.Errorf("state.IsAuthenticated(): expected false, got true")
	}
}

func TestLogout(t *testing.T) {
	type testCase struct {
		Token         string
		Authenticated bool
	}

	testCases := []testCase{
		{Token: "abc123", Authenticated: true},
		{Token: "abc123", Authenticated: false},
		{Token: "", Authenticated: true},
		{Token: "", Authenticated: false},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			ctx := context.Background()

			state := authstate.New()
			state.SetAuthenticated(tc.Authenticated)

			store := newStore(t, tc.Token)
			navigator := &recordingNavigator{}

			h := New(state, store, navigator)

			if err := h.Logout(ctx); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if state.IsAuthenticated() {
				t.Errorf("state.IsAuthenticated(): expected false, got true")
			}

			if _, err := store.Get(ctx, TokenKey); !errors.Is(err, kv.ErrNotFound) {
				t.Errorf("store.Get(TokenKey): expected kv.ErrNotFound, got '%v'", err)
			}

			if e, g := RouteHome, navigator.Current(); e != g {
				t.Errorf("navigator.Current(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()

	state := authstate.New()
	navigator := &recordingNavigator{}
	h := New(state, newStore(t, "abc123"), navigator)

	for i := 0; i < 2; i++ {
		if err := h.Logout(ctx); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if e, g := 2, len(navigator.paths); e != g {
		t.Errorf("len(navigator.paths): expected '%v', got '%v'", e, g)
	}
}

func TestLogoutStoreFailure(t *testing.T) {
	state := authstate.New()
	state.SetAuthenticated(true)

	navigator := &recordingNavigator{}
	h := New(state, failingStore{}, navigator)

	if err := h.Logout(context.Background()); err == nil {
		t.Fatalf("expected an error")
	}

	if state.IsAuthenticated() {
		t.Errorf("state.IsAuthenticated(): expected false, got true")
	}

	if e, g := 0, len(navigator.paths); e != g {
		t.Errorf("len(navigator.paths): expected '%v', got '%v'", e, g)
	}
}

func TestToggleMenuInvolution(t *testing.T) {
	for _, initial := range []bool{false, true} {
		h := New(authstate.New(), newStore(t, ""), &recordingNavigator{}, WithMenuOpen(initial))

		h.ToggleMenu()

		if e, g := !initial, h.MenuOpen(); e != g {
			t.Errorf("after one toggle from '%v': expected '%v', got '%v'", initial, e, g)
		}

		h.ToggleMenu()

		if e, g := initial, h.MenuOpen(); e != g {
			t.Errorf("after two toggles from '%v': expected '%v', got '%v'", initial, e, g)
		}
	}
}

func TestMenuStartsClosed(t *testing.T) {
	h := New(authstate.New(), newStore(t, ""), &recordingNavigator{})

	if h.MenuOpen() {
		t.Errorf("h.MenuOpen(): expected false, got true")
	}
}

func TestFollowMenuItemClosesMenu(t *testing.T) {
	for _, authenticated := range []bool{false, true} {
		state := authstate.New()
		state.SetAuthenticated(authenticated)

		items := Render(DefaultBrand, authenticated, true).Menu.Items()

		for _, item := range items {
			if item.Kind != ItemLink {
				continue
			}

			h := New(state, newStore(t, ""), &recordingNavigator{}, WithMenuOpen(true))

			target := h.Follow(item)

			if e, g := item.Path, target; e != g {
				t.Errorf("h.Follow(%s): expected target '%v', got '%v'", item.Label, e, g)
			}

			if h.MenuOpen() {
				t.Errorf("h.Follow(%s): expected the menu to be closed", item.Label)
			}
		}
	}
}

func TestFollowDesktopItemKeepsMenu(t *testing.T) {
	h := New(authstate.New(), newStore(t, ""), &recordingNavigator{}, WithMenuOpen(true))

	h.Follow(h.View().Desktop.Primary)

	if !h.MenuOpen() {
		t.Errorf("h.MenuOpen(): expected true, got false")
	}
}

func TestLoginLogoutScenario(t *testing.T) {
	ctx := context.Background()

	state := authstate.New()
	store := newStore(t, "abc123")
	navigator := &recordingNavigator{}

	h := New(state, store, navigator)

	if err := h.Initialize(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !state.IsAuthenticated() {
		t.Fatalf("state.IsAuthenticated(): expected true after mount")
	}

	if e, g := ItemLogout, h.View().Desktop.Primary.Kind; e != g {
		t.Errorf("h.View().Desktop.Primary.Kind: expected '%v', got '%v'", e, g)
	}

	if err := h.Logout(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.Get(ctx, TokenKey); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("store.Get(TokenKey): expected kv.ErrNotFound, got '%v'", err)
	}

	if state.IsAuthenticated() {
		t.Errorf("state.IsAuthenticated(): expected false after logout")
	}

	if e, g := "/", navigator.Current(); e != g {
		t.Errorf("navigator.Current(): expected '%v', got '%v'", e, g)
	}
}
