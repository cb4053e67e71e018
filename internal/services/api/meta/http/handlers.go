// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"cgeo/internal/core/cache"
	"cgeo/internal/core/textutil"
	"cgeo/internal/core/version"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/platform/store"
)

// readyTimeout bounds all backend pings of one /ready call
const readyTimeout = 2 * time.Second

// Deps are the handler dependencies
// PG and CH are probed when they implement store.Pinger, nil means disabled
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Locale      string
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers(d)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/text", h.text)
}

type handlers Deps

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"cgeo-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Now     string `json:"now"     example:"2026-10-01T08:05:00Z"`
}

// ReadyCheck is the outcome of probing one backend
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok" enums:"ok,fail,skipped,unknown"`
	Error  string `json:"error,omitempty" example:"connection refused"`
}

// ReadyResponse is ok when every backend answered, fail when one did not
// and degraded when one is disabled or cannot be probed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok" enums:"ok,degraded,fail"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T08:05:00Z"`
}

// ServiceResponse is the process name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"cgeo-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// TextResponse lists the text handling defaults
type TextResponse struct {
	Locale       string   `json:"locale"        example:"en"`
	StateFilters []string `json:"state_filters" example:"archived,disabled,enabled,found,not_found"`
	Checksum     string   `json:"checksum"      example:"crc32-ieee"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: stamp(h.StartedAt), Now: stamp(time.Now())}, nil
}

func probe(ctx context.Context, name string, backend any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "ok"}
	p, ok := backend.(store.Pinger)
	switch {
	case backend == nil:
		c.Status = "skipped"
	case !ok:
		c.Status = "unknown"
	default:
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// @Summary Readiness with backend checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{probe(ctx, "pg", h.PG), probe(ctx, "ch", h.CH)},
	}
	for _, c := range out.Checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status != "ok" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	out.Now = stamp(time.Now())
	return out, nil
}

// @Summary Process name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(time.Since(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Collation locale, cache state filters and checksum kind
// @Tags Meta
// @Produce json
// @Success 200 {object} TextResponse
// @Router /meta/text [get]
func (h handlers) text(*http.Request) (any, error) {
	loc := h.Locale
	if loc == "" {
		loc = textutil.DefaultLocale.String()
	}
	return TextResponse{Locale: loc, StateFilters: cache.StateKeys(), Checksum: "crc32-ieee"}, nil
}
