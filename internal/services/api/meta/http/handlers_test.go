package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "cgeo/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func get(t *testing.T, d Deps, path string, out any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("%s status = %d", path, rec.Code)
	}
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		deps Deps
		want string
	}{
		{"all ok", Deps{PG: pinger{}, CH: pinger{}}, "ok"},
		{"ch skipped", Deps{PG: pinger{}}, "degraded"},
		{"pg down", Deps{PG: pinger{err: errors.New("refused")}, CH: pinger{}}, "fail"},
		{"not a pinger", Deps{PG: struct{}{}, CH: pinger{}}, "degraded"},
	}
	for _, c := range cases {
		var got ReadyResponse
		get(t, c.deps, "/ready", &got)
		if got.Status != c.want {
			t.Errorf("%s: status = %q, want %q (%+v)", c.name, got.Status, c.want, got.Checks)
		}
	}
}

func TestHealthAndText(t *testing.T) {
	t.Parallel()

	d := Deps{ServiceName: "cgeo-api", StartedAt: time.Now().Add(-time.Minute), Locale: "de"}

	var h HealthResponse
	get(t, d, "/health", &h)
	if !h.OK || h.Service != "cgeo-api" {
		t.Fatalf("health = %+v", h)
	}

	var tx TextResponse
	get(t, d, "/text", &tx)
	if tx.Locale != "de" || len(tx.StateFilters) != 5 || tx.Checksum != "crc32-ieee" {
		t.Fatalf("text = %+v", tx)
	}

	var s ServiceResponse
	get(t, d, "/service", &s)
	if s.Uptime < 59 {
		t.Fatalf("uptime = %d", s.Uptime)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	var v struct {
		Service string `json:"service"`
		Go      string `json:"go"`
	}
	get(t, Deps{}, "/version", &v)
	if v.Go == "" {
		t.Fatalf("version = %+v", v)
	}
}
