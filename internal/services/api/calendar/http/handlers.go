// Package http provides http transport for calendar export
package http

import (
	stdhttp "net/http"
	"strings"

	"cgeo/internal/modkit/httpkit"
	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/services/api/calendar/domain"
	svc "cgeo/internal/services/api/calendar/service"
)

// Register mounts calendar endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.EventInput](r, "/event", h.event)
	httpkit.PostJSON[domain.EventInput](r, "/event.ics", h.ics)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /calendar/event Calendar calendarEvent
// @Summary Build the calendar event for an event cache
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body domain.EventInput true "Listing"
// @Success 200 {object} domain.EventOutput "ok"
// @Router /calendar/event [post]
func (h *handlers) event(r *stdhttp.Request, in domain.EventInput) (any, error) {
	return h.svc.Event(r.Context(), in)
}

// swagger:route POST /calendar/event.ics Calendar calendarICS
// @Summary Download the calendar event as an iCalendar file
// @Tags Calendar
// @Accept json
// @Produce text/calendar
// @Param payload body domain.EventInput true "Listing"
// @Success 200 {string} string "ics"
// @Router /calendar/event.ics [post]
func (h *handlers) ics(r *stdhttp.Request, in domain.EventInput) (any, error) {
	out, err := h.svc.Event(r.Context(), in)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Entry.Geocode)
	if name == "" {
		name = "event"
	}
	return phttp.Attachment("text/calendar; charset=utf-8", name+".ics", []byte(out.ICS)), nil
}
