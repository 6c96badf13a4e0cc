package ratelimit

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bornholm/masthead/internal/syncx"
	"github.com/bornholm/masthead/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const DefaultIdleTimeout = 10 * time.Minute

// RateLimiter throttles requests per key, one token bucket per key. Buckets
// idle for longer than the idle timeout are dropped.
type RateLimiter struct {
	rate        rate.Limit
	burst       int
	idleTimeout time.Duration
	now         func() time.Time

	limiters syncx.Map[string, *bucket]

	sweepMutex sync.Mutex
	lastSweep  time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type GetKeyFunc func(r *http.Request) (string, error)

type OptionFunc func(l *RateLimiter)

func WithIdleTimeout(timeout time.Duration) OptionFunc {
	return func(l *RateLimiter) {
		l.idleTimeout = timeout
	}
}

func (l *RateLimiter) Allow(key string) bool {
	now := l.now()

	b, exists := l.limiters.Load(key)
	if !exists {
		b, _ = l.limiters.LoadOrStore(key, &bucket{limiter: rate.NewLimiter(l.rate, l.burst)})
	}

	b.lastSeen.Store(now.UnixNano())

	allowed := b.limiter.AllowN(now, 1)

	l.sweep(now)

	return allowed
}

// Len returns the number of buckets currently held.
func (l *RateLimiter) Len() int {
	count := 0
	l.limiters.Range(func(_ string, _ *bucket) bool {
		count++
		return true
	})

	return count
}

func (l *RateLimiter) sweep(now time.Time) {
	l.sweepMutex.Lock()
	if now.Sub(l.lastSweep) < l.idleTimeout {
		l.sweepMutex.Unlock()
		return
	}
	l.lastSweep = now
	l.sweepMutex.Unlock()

	threshold := now.Add(-l.idleTimeout).UnixNano()

	l.limiters.Range(func(key string, b *bucket) bool {
		if b.lastSeen.Load() < threshold {
			l.limiters.Delete(key)
		}

		return true
	})
}

func (l *RateLimiter) Middleware(getKey GetKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, err := getKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve rate limiting key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(key) {
				slog.WarnContext(ctx, "rate limit exceeded")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func New(rate rate.Limit, burst int, funcs ...OptionFunc) *RateLimiter {
	limiter := &RateLimiter{
		rate:        rate,
		burst:       burst,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}

	for _, fn := range funcs {
		fn(limiter)
	}

	limiter.lastSweep = limiter.now()

	return limiter
}
