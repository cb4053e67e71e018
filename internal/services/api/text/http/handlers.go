// Package http provides http transport for text operations
package http

import (
	stdhttp "net/http"

	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/text/domain"
	svc "cgeo/internal/services/api/text/service"
)

// Register mounts text endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.MatchInput](r, "/match", h.match)
	httpkit.PostJSON[domain.NormalizeInput](r, "/normalize", h.normalize)
	httpkit.PostJSON[domain.InspectInput](r, "/inspect", h.inspect)
	httpkit.PostJSON[domain.SortInput](r, "/sort", h.sort)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /text/match Text textMatch
// @Summary Extract a capture group from text
// @Tags Text
// @Accept json
// @Produce json
// @Param payload body domain.MatchInput true "Pattern and text"
// @Success 200 {object} domain.MatchOutput "ok"
// @Router /text/match [post]
func (h *handlers) match(r *stdhttp.Request, in domain.MatchInput) (any, error) {
	return h.svc.Match(r.Context(), in)
}

// swagger:route POST /text/normalize Text textNormalize
// @Summary Collapse whitespace, strip control characters, trim or flatten HTML
// @Tags Text
// @Accept json
// @Produce json
// @Param payload body domain.NormalizeInput true "Text and op"
// @Success 200 {object} domain.NormalizeOutput "ok"
// @Router /text/normalize [post]
func (h *handlers) normalize(r *stdhttp.Request, in domain.NormalizeInput) (any, error) {
	return h.svc.Normalize(r.Context(), in)
}

// swagger:route POST /text/inspect Text textInspect
// @Summary HTML detection and checksum
// @Tags Text
// @Accept json
// @Produce json
// @Param payload body domain.InspectInput true "Text"
// @Success 200 {object} domain.InspectOutput "ok"
// @Router /text/inspect [post]
func (h *handlers) inspect(r *stdhttp.Request, in domain.InspectInput) (any, error) {
	return h.svc.Inspect(r.Context(), in)
}

// swagger:route POST /text/sort Text textSort
// @Summary Locale aware, case and accent insensitive sort
// @Description locale falls back to ?locale= or Accept-Language, then the service default
// @Tags Text
// @Accept json
// @Produce json
// @Param payload body domain.SortInput true "Items"
// @Success 200 {object} domain.SortOutput "ok"
// @Router /text/sort [post]
func (h *handlers) sort(r *stdhttp.Request, in domain.SortInput) (any, error) {
	in.Locale = httpkit.LocaleOr(r, in.Locale)
	return h.svc.Sort(r.Context(), in)
}
