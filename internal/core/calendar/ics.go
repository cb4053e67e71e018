package calendar

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	icsProdID   = "-//cgeo//calendar export//EN"
	icsLineMax  = 75
	icsDateTime = "20060102T150405Z"
	icsDate     = "20060102"
)

// newUID is a seam for tests
var newUID = func() string { return uuid.NewString() }

// ICS renders ev as a single-event iCalendar (RFC 5545) document
// now is the DTSTAMP, pass the current time outside of tests
func (ev Event) ICS(now time.Time) string {
	var b strings.Builder
	line := func(name, value string) { writeFolded(&b, name+":"+value) }

	line("BEGIN", "VCALENDAR")
	line("VERSION", "2.0")
	line("PRODID", icsProdID)
	line("CALSCALE", "GREGORIAN")
	line("BEGIN", "VEVENT")
	line("UID", newUID()+"@cgeo")
	line("DTSTAMP", now.UTC().Format(icsDateTime))
	if ev.AllDay {
		line("DTSTART;VALUE=DATE", ev.Begin.UTC().Format(icsDate))
	} else {
		line("DTSTART", ev.Begin.UTC().Format(icsDateTime))
	}
	line("SUMMARY", escapeText(ev.Title))
	if ev.Description != "" {
		line("DESCRIPTION", escapeText(ev.Description))
	}
	if ev.Location != "" {
		line("LOCATION", escapeText(ev.Location))
	}
	if ev.URL != "" {
		line("URL", ev.URL)
	}
	line("TRANSP", "TRANSPARENT")
	line("END", "VEVENT")
	line("END", "VCALENDAR")
	return b.String()
}

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// escapeText escapes a TEXT property value
func escapeText(s string) string { return icsEscaper.Replace(s) }

// writeFolded writes one content line, folded at 75 octets without splitting UTF-8 sequences
// continuation lines start with a single space which counts toward their length
func writeFolded(b *strings.Builder, s string) {
	limit := icsLineMax
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = icsLineMax - 1
	}
	b.WriteString(s)
	b.WriteString("\r\n")
}
