package browser

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
)

func TestClientKey(t *testing.T) {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))

	var keys []string

	handler := Middleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := ClientKey(r)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		keys = append(keys, key)
	}))

	newRequest := func(remoteAddr string, cookies ...*http.Cookie) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return req
	}

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newRequest("192.0.2.1:1234"))
	cookies := first.Result().Cookies()

	handler.ServeHTTP(httptest.NewRecorder(), newRequest("192.0.2.1:5678"))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("192.0.2.2:1234"))
	handler.ServeHTTP(httptest.NewRecorder(), newRequest("192.0.2.1:1234", cookies...))

	type testCase struct {
		Expected func(key string) bool
	}

	testCases := []testCase{
		{Expected: func(key string) bool { return key == "addr:192.0.2.1" }},
		{Expected: func(key string) bool { return key == "addr:192.0.2.1" }},
		{Expected: func(key string) bool { return key == "addr:192.0.2.2" }},
		{Expected: func(key string) bool { return strings.HasPrefix(key, "browser:") }},
	}

	if e, g := len(testCases), len(keys); e != g {
		t.Fatalf("len(keys): expected '%v', got '%v'", e, g)
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			if !tc.Expected(keys[idx]) {
				t.Errorf("unexpected key '%s'", keys[idx])
			}
		})
	}
}

func TestClientKeyRequiresBrowserID(t *testing.T) {
	if _, err := ClientKey(httptest.NewRequest(http.MethodGet, "/", nil)); err == nil {
		t.Errorf("expected an error without browser id")
	}
}
