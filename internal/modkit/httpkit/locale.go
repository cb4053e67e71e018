package httpkit

import (
	"net/http"

	pnet "cgeo/internal/platform/net"

	"golang.org/x/text/language"
)

// RequestLocale is the tag the locale middleware negotiated, def when there is none
func RequestLocale(r *http.Request, def language.Tag) language.Tag {
	if tag, err := language.Parse(pnet.Locale(r.Context())); err == nil {
		return tag
	}
	return def
}

// LocaleOr keeps an explicit locale from the body, otherwise uses the negotiated one
func LocaleOr(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return pnet.Locale(r.Context())
}
