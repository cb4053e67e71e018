// Package http provides http transport for caches
package http

import (
	stdhttp "net/http"
	"strconv"

	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/caches/domain"
	perr "cgeo/internal/platform/errors"
	svc "cgeo/internal/services/api/caches/service"
)

// Register mounts cache endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.UpsertInput](r, "/upsert", h.upsert)
	httpkit.Get(r, "/{geocode}", h.get)
	httpkit.Get(r, "/{geocode}/changes", h.changes)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /caches/list Caches cachesList
// @Summary List caches by owner and state, ordered by name
// @Tags Caches
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filter"
// @Success 200 {object} domain.ListOutput "ok"
// @Failure 503 {object} httpkit.Envelope "storage disabled"
// @Router /caches/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	in.Locale = httpkit.LocaleOr(r, in.Locale)
	return h.svc.List(r.Context(), in)
}

// swagger:route POST /caches/upsert Caches cachesUpsert
// @Summary Store a cache and track description changes
// @Tags Caches
// @Accept json
// @Produce json
// @Param payload body domain.UpsertInput true "Cache"
// @Success 200 {object} domain.UpsertOutput "ok"
// @Router /caches/upsert [post]
func (h *handlers) upsert(r *stdhttp.Request, in domain.UpsertInput) (any, error) {
	return h.svc.Upsert(r.Context(), in)
}

// swagger:route GET /caches/{geocode} Caches cachesGet
// @Summary Get one cache
// @Tags Caches
// @Produce json
// @Param geocode path string true "Geocode"
// @Success 200 {object} domain.CacheView "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /caches/{geocode} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.URLParam(r, "geocode"))
}

// @Summary Description change history of one cache, newest first
// @Tags Caches
// @Produce json
// @Param geocode path string true "Geocode"
// @Param limit query int false "At most this many changes, default 20"
// @Success 200 {object} domain.HistoryOutput "ok"
// @Failure 503 {object} httpkit.Envelope "history disabled"
// @Router /caches/{geocode}/changes [get]
func (h *handlers) changes(r *stdhttp.Request) (any, error) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("invalid limit %q", s), "limit")
		}
		limit = n
	}
	return h.svc.History(r.Context(), httpkit.URLParam(r, "geocode"), limit)
}
