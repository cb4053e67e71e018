package middleware

import (
	"net/http"
	"time"

	"cgeo/internal/platform/logger"
	pnet "cgeo/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog puts the request id on the ctx logger and logs one line per request
// requests at or over slow log at warn, 0 turns that off
func AccessLog(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			log := logger.C(ctx)
			ev := log.Info()
			if slow > 0 && elapsed >= slow {
				ev = log.Warn()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
