package service

import (
	"context"
	"testing"
	"time"

	"cgeo/internal/core/calendar"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/testkit"
	"cgeo/internal/services/api/calendar/domain"
)

func TestEvent(t *testing.T) {
	t.Parallel()

	s := New()
	s.now = func() time.Time { return time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC) }

	out, err := s.Event(context.Background(), domain.EventInput{Entry: calendar.Entry{
		Geocode:          "GC1",
		Name:             "<b>Pumpkin</b> walk",
		Date:             time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		StartTimeMinutes: 18 * 60,
	}})
	if err != nil {
		t.Fatalf("Event: %v", err)
	}
	if out.Event.Title != "Pumpkin walk" || out.Event.AllDay {
		t.Fatalf("event = %+v", out.Event)
	}
	testkit.MustContain(t, out.ICS, "DTSTAMP:20261017T080000Z\r\n")
	testkit.MustContain(t, out.ICS, "DTSTART:20261031T180000Z\r\n")
	testkit.MustContain(t, out.ICS, "SUMMARY:Pumpkin walk\r\n")
}

func TestEvent_NoDate(t *testing.T) {
	t.Parallel()

	_, err := New().Event(context.Background(), domain.EventInput{Entry: calendar.Entry{Name: "x"}})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}
