// Package calendar turns a cache event listing into a calendar event
// The event carries no alarm, is pinned to UTC and becomes an all-day event
// when the listing has no usable start time
package calendar

import (
	"strings"
	"time"

	"cgeo/internal/core/htmltext"
	perr "cgeo/internal/platform/errors"
)

// Timezone is the event timezone, listing dates are day precision in UTC
const Timezone = "UTC"

// Entry is the data a cache listing contributes to a calendar event
type Entry struct {
	Geocode          string    `json:"geocode"           validate:"omitempty,max=16"        example:"GC12345"`
	Name             string    `json:"name"              validate:"required,max=512"        example:"Event &amp; Picnic"`
	ShortDescription string    `json:"short_description" validate:"omitempty,max=65536"`
	PersonalNote     string    `json:"personal_note"     validate:"omitempty,max=65536"`
	URL              string    `json:"url"               validate:"omitempty,url,max=2048"  example:"https://coord.info/GC12345"`
	Date             time.Time `json:"date"              validate:"required"                example:"2026-10-18T00:00:00Z"`
	StartTimeMinutes int       `json:"start_time_minutes" validate:"min=-1,max=1439"        example:"870"`
	Coords           string    `json:"coords"            validate:"omitempty,max=64"        example:"N 52° 31.000' E 013° 24.000'"`
}

// Event is the calendar event derived from an Entry
type Event struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	HasAlarm    bool      `json:"has_alarm"`
	Timezone    string    `json:"timezone"`
	Begin       time.Time `json:"begin"`
	AllDay      bool      `json:"all_day"`
	Location    string    `json:"location,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// BuildEvent derives the calendar event for e
// a negative StartTimeMinutes means the listing has no start time and yields an all-day event
func BuildEvent(e Entry) (Event, error) {
	if e.Date.IsZero() {
		return Event{}, perr.WithField(perr.InvalidArgf("calendar entry has no date"), "date")
	}

	day := e.Date.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	ev := Event{
		Title:       htmltext.FromHTML(e.Name).String(),
		Description: Description(e),
		HasAlarm:    false,
		Timezone:    Timezone,
		URL:         e.URL,
	}
	if e.StartTimeMinutes >= 0 {
		ev.Begin = day.Add(time.Duration(e.StartTimeMinutes) * time.Minute)
	} else {
		ev.Begin = day
		ev.AllDay = true
	}
	if e.Coords != "" {
		ev.Location = e.Coords
	}
	return ev, nil
}

// Description builds the event body: the listing URL, then the short description
// and the personal note rendered to text, separated by blank lines
func Description(e Entry) string {
	var b strings.Builder
	b.WriteString(e.URL)
	for _, part := range []string{e.ShortDescription, e.PersonalNote} {
		text := htmltext.FromHTMLTrimmed(part)
		if strings.TrimSpace(string(text)) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(string(text))
	}
	return b.String()
}
