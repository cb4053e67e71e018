// Package domain holds DTOs for the calendar http and service contracts
package domain

import "cgeo/internal/core/calendar"

// EventInput is the cache listing an event is built from
type EventInput struct {
	Entry calendar.Entry `json:"entry"`
}

// EventOutput is the derived event and its iCalendar rendering
type EventOutput struct {
	Event calendar.Event `json:"event"`
	ICS   string         `json:"ics"`
}
