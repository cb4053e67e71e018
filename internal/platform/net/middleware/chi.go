// Package middleware is the request pipeline: chi's stock handlers plus
// request logging, panic recovery, locale negotiation and rate limiting
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middleware is the shape every constructor here returns
type Middleware = func(http.Handler) http.Handler

// Writer writes an early JSON reply, phttp.JSON in production
type Writer = func(w http.ResponseWriter, status int, body any)

func RequestID() Middleware              { return chimw.RequestID }
func RealIP() Middleware                 { return chimw.RealIP }
func NoCache() Middleware                { return chimw.NoCache }
func StripSlashes() Middleware           { return chimw.StripSlashes }
func Heartbeat(path string) Middleware   { return chimw.Heartbeat(path) }
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips and deflates responses at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// JSONOnly rejects request bodies that are not application/json with 415
func JSONOnly() Middleware { return chimw.AllowContentType("application/json") }

// CORS allows origins to call the API from a browser, no origins means any
func CORS(origins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})
}
