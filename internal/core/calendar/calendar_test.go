package calendar

import (
	"strings"
	"testing"
	"time"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/testkit"
)

var eventDay = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func TestBuildEvent_StartTime(t *testing.T) {
	t.Parallel()

	ev, err := BuildEvent(Entry{
		Name:             "Halloween &amp; <b>Pumpkins</b>",
		URL:              "https://coord.info/GC12345",
		Date:             eventDay,
		StartTimeMinutes: 14*60 + 30,
		Coords:           "N 52° 31.000' E 013° 24.000'",
	})
	if err != nil {
		t.Fatalf("BuildEvent error: %v", err)
	}
	if ev.Title != "Halloween & Pumpkins" {
		t.Fatalf("title = %q", ev.Title)
	}
	if ev.AllDay {
		t.Fatal("event with start time must not be all-day")
	}
	if want := eventDay.Add(14*time.Hour + 30*time.Minute); !ev.Begin.Equal(want) {
		t.Fatalf("begin = %v, want %v", ev.Begin, want)
	}
	if ev.HasAlarm || ev.Timezone != "UTC" {
		t.Fatalf("alarm/timezone = %v/%q", ev.HasAlarm, ev.Timezone)
	}
	if ev.Location != "N 52° 31.000' E 013° 24.000'" {
		t.Fatalf("location = %q", ev.Location)
	}
}

func TestBuildEvent_AllDay(t *testing.T) {
	t.Parallel()

	// time of day on the listing date is ignored
	ev, err := BuildEvent(Entry{Name: "Meet", Date: eventDay.Add(5 * time.Hour), StartTimeMinutes: -1})
	if err != nil {
		t.Fatalf("BuildEvent error: %v", err)
	}
	if !ev.AllDay || !ev.Begin.Equal(eventDay) {
		t.Fatalf("all-day = %v begin = %v", ev.AllDay, ev.Begin)
	}
	if ev.Location != "" {
		t.Fatalf("empty coords should leave no location, got %q", ev.Location)
	}
}

func TestBuildEvent_NoDate(t *testing.T) {
	t.Parallel()

	_, err := BuildEvent(Entry{Name: "x"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	got := Description(Entry{
		URL:              "https://coord.info/GC1",
		ShortDescription: "<p>Bring a torch</p>\n",
		PersonalNote:     "   ",
	})
	if want := "https://coord.info/GC1\n\nBring a torch"; got != want {
		t.Fatalf("description = %q, want %q", got, want)
	}

	got = Description(Entry{PersonalNote: "note<br>two"})
	if got != "note\ntwo" {
		t.Fatalf("description = %q", got)
	}
}

func TestICS(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newUID, func() string { return "fixed" })

	ev := Event{
		Title:       "Picnic; lunch, drinks",
		Description: "line1\nline2",
		Begin:       eventDay.Add(90 * time.Minute),
		Location:    "Park",
		URL:         "https://coord.info/GC1",
	}
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	out := ev.ICS(now)

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"UID:fixed@cgeo\r\n",
		"DTSTAMP:20261017T120000Z\r\n",
		"DTSTART:20261018T013000Z\r\n",
		`SUMMARY:Picnic\; lunch\, drinks` + "\r\n",
		`DESCRIPTION:line1\nline2` + "\r\n",
		"LOCATION:Park\r\n",
		"URL:https://coord.info/GC1\r\n",
		"END:VCALENDAR\r\n",
	} {
		testkit.MustContain(t, out, want)
	}
	if strings.Contains(out, "VALARM") {
		t.Fatal("events carry no alarm")
	}

	ev.AllDay = true
	ev.Begin = eventDay
	testkit.MustContain(t, ev.ICS(now), "DTSTART;VALUE=DATE:20261018\r\n")
}

func TestWriteFolded(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	long := "SUMMARY:" + strings.Repeat("ä", 60)
	writeFolded(&b, long)

	lines := strings.Split(strings.TrimSuffix(b.String(), "\r\n"), "\r\n")
	if len(lines) < 2 {
		t.Fatalf("expected folding, got %q", b.String())
	}
	var joined strings.Builder
	for i, l := range lines {
		if len(l) > icsLineMax {
			t.Fatalf("line %d has %d octets", i, len(l))
		}
		if i > 0 {
			if !strings.HasPrefix(l, " ") {
				t.Fatalf("continuation line %d must start with a space", i)
			}
			l = l[1:]
		}
		joined.WriteString(l)
	}
	if joined.String() != long {
		t.Fatal("unfolding does not restore the original line")
	}
}
