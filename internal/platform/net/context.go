// Package net holds the request scoped values and the JSON envelope
// shared by the router, the handlers and the middleware
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type localeKey struct{}

// WithRequest stores the request id and negotiated locale, empty values are skipped
// the id goes under chi's key so chi's own middleware sees the same value
func WithRequest(ctx context.Context, reqID, locale string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if locale != "" {
		ctx = context.WithValue(ctx, localeKey{}, locale)
	}
	return ctx
}

// RequestID is the id set by WithRequest or chi's RequestID middleware
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Locale is the BCP 47 tag negotiated for the request, empty when none was
func Locale(ctx context.Context) string {
	s, _ := ctx.Value(localeKey{}).(string)
	return s
}
