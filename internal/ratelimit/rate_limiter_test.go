package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestMiddleware(t *testing.T) {
	limiter := New(0, 2)

	handler := limiter.Middleware(func(r *http.Request) (string, error) {
		key := r.URL.Query().Get("key")
		if key == "" {
			return "", errors.New("missing key")
		}
		return key, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		URL    string
		Status int
	}

	testCases := []testCase{
		{URL: "/?key=alice", Status: http.StatusNoContent},
		{URL: "/?key=alice", Status: http.StatusNoContent},
		{URL: "/?key=alice", Status: http.StatusTooManyRequests},
		{URL: "/?key=bob", Status: http.StatusNoContent},
		{URL: "/", Status: http.StatusInternalServerError},
	}

	for idx, tc := range testCases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.URL, nil))

		if e, g := tc.Status, rec.Code; e != g {
			t.Errorf("request #%d (%s): expected status '%v', got '%v'", idx, tc.URL, e, g)
		}
	}
}

func TestIdleBucketsAreDropped(t *testing.T) {
	now := time.Unix(0, 0)

	limiter := New(1, 1, WithIdleTimeout(time.Minute))
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	for idx := 0; idx < 10; idx++ {
		limiter.Allow(fmt.Sprintf("client-%d", idx))
	}

	if e, g := 10, limiter.Len(); e != g {
		t.Fatalf("limiter.Len(): expected '%v', got '%v'", e, g)
	}

	now = now.Add(2 * time.Minute)

	if !limiter.Allow("client-0") {
		t.Errorf("limiter.Allow(\"client-0\"): expected a refilled bucket")
	}

	if e, g := 1, limiter.Len(); e != g {
		t.Errorf("limiter.Len(): expected '%v', got '%v'", e, g)
	}
}
