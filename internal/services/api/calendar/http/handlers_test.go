package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/platform/testkit"
	"cgeo/internal/services/api/calendar/service"

	"github.com/go-chi/chi/v5"
)

const listing = `{"entry":{"geocode":"GC1","name":"Meet <b>and</b> greet","date":"2026-10-18T00:00:00Z","start_time_minutes":-1}}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/calendar", func(r phttp.Router) { Register(r, service.New()) })
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*stdhttp.Response, string) {
	t.Helper()
	res, err := stdhttp.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer func() { _ = res.Body.Close() }()
	b, _ := io.ReadAll(res.Body)
	return res, string(b)
}

func TestEventEndpoint(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	res, body := post(t, srv.URL+"/calendar/event", listing)
	if res.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d body = %s", res.StatusCode, body)
	}
	testkit.MustContain(t, body, `"title":"Meet and greet"`)
	testkit.MustContain(t, body, `"all_day":true`)
	testkit.MustContain(t, body, `DTSTART;VALUE=DATE:20261018`)

	res, _ = post(t, srv.URL+"/calendar/event", `{"entry":{"name":"x"}}`)
	if res.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("missing date status = %d", res.StatusCode)
	}
}

func TestEventICSEndpoint(t *testing.T) {
	t.Parallel()

	res, body := post(t, newServer(t).URL+"/calendar/event.ics", listing)
	if res.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content-type = %q", ct)
	}
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n") {
		t.Fatalf("body = %q", body)
	}
	testkit.MustContain(t, res.Header.Get("Content-Disposition"), "GC1.ics")
}
