// Package service builds calendar events for cache listings
package service

import (
	"context"
	"time"

	"cgeo/internal/core/calendar"
	"cgeo/internal/platform/logger"
	"cgeo/internal/services/api/calendar/domain"
)

// Service defines the service contract for calendar export
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	now func() time.Time
}

// New creates a calendar service
func New() *Svc { return &Svc{now: time.Now} }

// Event derives the calendar event for one listing and renders it as iCalendar
func (s *Svc) Event(ctx context.Context, in domain.EventInput) (domain.EventOutput, error) {
	ev, err := calendar.BuildEvent(in.Entry)
	if err != nil {
		return domain.EventOutput{}, err
	}
	logger.C(ctx).Debug().
		Str("geocode", in.Entry.Geocode).
		Bool("all_day", ev.AllDay).
		Msg("calendar event built")
	return domain.EventOutput{Event: ev, ICS: ev.ICS(s.now())}, nil
}
