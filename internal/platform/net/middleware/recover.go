package middleware

import (
	"net/http"
	"runtime/debug"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/logger"
	pnet "cgeo/internal/platform/net"
)

// Recover turns a handler panic into a logged stack and a 500 envelope
// http.ErrAbortHandler is re-panicked so net/http can drop the connection
func Recover(write Writer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.C(r.Context()).Error().
					Interface("panic", v).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				status, body := pnet.Failure(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
				write(w, status, body)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
