package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/services/api/text/service"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/text", func(r phttp.Router) {
		Register(r, service.New(language.English))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func post(t *testing.T, srv *httptest.Server, path, body string) envelope {
	t.Helper()
	res, err := stdhttp.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer func() { _ = res.Body.Close() }()
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if env.StatusCode != res.StatusCode {
		t.Fatalf("envelope status %d != %d", env.StatusCode, res.StatusCode)
	}
	return env
}

func TestMatchEndpoint(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	env := post(t, srv, "/text/match", `{"text":"<b>id=42</b> id=7","pattern":"id=(\\d+)","group":1,"last":true}`)
	if env.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status %d: %s", env.StatusCode, env.Error)
	}
	if got := string(env.Data); got != `{"value":"7","matched":true}` {
		t.Fatalf("data = %s", got)
	}

	env = post(t, srv, "/text/match", `{"text":"x","pattern":"id=(\\d+"}`)
	if env.StatusCode != stdhttp.StatusBadRequest || !strings.Contains(env.Error, "pattern") {
		t.Fatalf("invalid pattern: %d %q", env.StatusCode, env.Error)
	}
}

func TestNormalizeAndInspectEndpoints(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	env := post(t, srv, "/text/normalize", `{"text":"  a \t b ","op":"whitespace"}`)
	if string(env.Data) != `{"value":"a b "}` {
		t.Fatalf("normalize = %d %s", env.StatusCode, env.Data)
	}

	env = post(t, srv, "/text/normalize", `{"text":"x","op":"upper"}`)
	if env.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("unknown op status = %d", env.StatusCode)
	}

	env = post(t, srv, "/text/inspect", `{"text":"<p>x</p>"}`)
	if !strings.Contains(string(env.Data), `"contains_html":true`) {
		t.Fatalf("inspect = %s", env.Data)
	}
}

func TestSortEndpoint(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	env := post(t, srv, "/text/sort", `{"items":["b","Ä","a"],"locale":"de"}`)
	if string(env.Data) != `{"items":["a","Ä","b"]}` {
		t.Fatalf("sort = %d %s", env.StatusCode, env.Data)
	}
}
