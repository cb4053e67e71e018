package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "cgeo/internal/platform/errors"
	pnet "cgeo/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions sizes the per client token bucket
type RateLimitOptions struct {
	// PerSecond is the refill rate, 0 or less disables limiting
	PerSecond float64
	Burst     int
	// Idle is how long an unused bucket is kept
	Idle time.Duration
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type limiter struct {
	opt     RateLimitOptions
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

func (l *limiter) allow(key string) (bool, time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) >= l.opt.Idle {
		for k, b := range l.buckets {
			if now.Sub(b.seen) >= l.opt.Idle {
				delete(l.buckets, k)
			}
		}
		l.swept = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(l.opt.PerSecond), l.opt.Burst)}
		l.buckets[key] = b
	}
	b.seen = now

	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// RateLimit answers 429 with Retry-After once a client, keyed by remote IP, runs out of tokens
// put it after RealIP so proxied clients are told apart
func RateLimit(opt RateLimitOptions, write Writer) Middleware {
	if opt.PerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opt.Burst < 1 {
		opt.Burst = int(math.Ceil(opt.PerSecond))
	}
	if opt.Idle <= 0 {
		opt.Idle = 5 * time.Minute
	}
	l := &limiter{opt: opt, now: time.Now, buckets: map[string]*bucket{}}
	return rateLimit(l, write)
}

func rateLimit(l *limiter, write Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.allow(clientKey(r))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				status, body := pnet.Failure(
					perr.Newf(perr.ErrorCodeRateLimited, "rate limit exceeded, retry in %ds", max(secs, 1)),
					pnet.RequestID(r.Context()),
				)
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
