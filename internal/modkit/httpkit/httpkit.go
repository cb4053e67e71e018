// Package httpkit is what API modules import to register routes,
// it keeps the platform transport and middleware packages out of module code
package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/platform/net/middleware"

	"golang.org/x/text/language"
)

type (
	Router           = phttp.Router
	Envelope         = phttp.Envelope
	RateLimitOptions = middleware.RateLimitOptions
)

// Get registers a handler without a request body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.Call(h))
}

// PostJSON registers a handler for a validated JSON body of type T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.Decode(h))
}

// URLParam is the named path segment, e.g. {geocode}
func URLParam(r *http.Request, name string) string { return phttp.URLParam(r, name) }

// StackOptions tunes the shared middleware stack
type StackOptions struct {
	Origins   []string
	Timeout   time.Duration
	SlowLog   time.Duration
	RateLimit RateLimitOptions
	// Locale is the fallback when negotiation finds nothing, Supported the tags it may pick
	Locale    language.Tag
	Supported []language.Tag
}

// Stack is the middleware every API route runs through, outermost first
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(o.SlowLog),
		middleware.Recover(phttp.JSON),
		middleware.RateLimit(o.RateLimit, phttp.JSON),
		middleware.CORS(o.Origins),
		middleware.NoCache(),
		middleware.StripSlashes(),
		middleware.Compress(flate.BestSpeed),
		middleware.JSONOnly(),
		middleware.Timeout(o.Timeout),
		middleware.Locale(o.Locale, o.Supported, phttp.JSON),
	}
}

// MountAPI mounts the versioned API under /api/<version> behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+version, func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
