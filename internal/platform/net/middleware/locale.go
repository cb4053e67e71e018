package middleware

import (
	"net/http"
	"strings"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/logger"
	pnet "cgeo/internal/platform/net"

	"golang.org/x/text/language"
)

// Locale negotiates the request locale and stores it on the context
// an explicit ?locale= wins and must parse, Accept-Language is best effort
// the negotiated tag is one of supported, or def when nothing matches
func Locale(def language.Tag, supported []language.Tag, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	tags := append([]language.Tag{def}, supported...)
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := def
			if q := strings.TrimSpace(r.URL.Query().Get("locale")); q != "" {
				t, err := language.Parse(q)
				if err != nil {
					status, body := pnet.Failure(
						perr.WithField(perr.InvalidArgf("invalid locale %q", q), "locale"),
						pnet.RequestID(r.Context()),
					)
					write(w, status, body)
					return
				}
				tag = t
			} else if h := r.Header.Get("Accept-Language"); h != "" {
				if prefs, _, err := language.ParseAcceptLanguage(h); err == nil && len(prefs) > 0 {
					_, idx, conf := matcher.Match(prefs...)
					if conf != language.No {
						tag = tags[idx]
					}
				}
			}

			loc := tag.String()
			ctx := pnet.WithRequest(r.Context(), "", loc)
			ctx = logger.WithRequest(ctx, "", loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
