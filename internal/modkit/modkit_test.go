package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cgeo/internal/modkit/httpkit"
	phttp "cgeo/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pingPorts struct{ Reply string }

func serve(t *testing.T, m Module, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func ping(r httpkit.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
}

func TestRoutes_Mount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		prefix string
		path   string
		want   int
	}{
		{"prefixed", "/text", "/text/ping", http.StatusOK},
		{"missing slash", "text/", "/text/ping", http.StatusOK},
		{"wrong prefix", "/text", "/ping", http.StatusNotFound},
		{"root", "", "/ping", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New("text", c.prefix, ping)
			if rec := serve(t, m, c.path); rec.Code != c.want {
				t.Fatalf("GET %s = %d, want %d", c.path, rec.Code, c.want)
			}
		})
	}
}

func TestRoutes_Middlewares(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(s string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, s)
				next.ServeHTTP(w, r)
			})
		}
	}

	for _, prefix := range []string{"/meta", ""} {
		order = nil
		m := New("meta", "/ignored", ping, WithPrefix(prefix), WithMiddlewares(tag("a"), tag("b")))
		if rec := serve(t, m, prefix+"/ping"); rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Fatalf("prefix %q: %d %q", prefix, rec.Code, rec.Body.String())
		}
		if len(order) != 2 || order[0] != "a" || order[1] != "b" {
			t.Fatalf("prefix %q: order = %v", prefix, order)
		}
	}
}

func TestRoutes_NoRegister(t *testing.T) {
	t.Parallel()

	m := New("caches", "", nil)
	if rec := serve(t, m, "/ping"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPortsOf(t *testing.T) {
	t.Parallel()

	m := New("text", "/text", nil, WithPorts(pingPorts{Reply: "pong"}))
	p, ok := PortsOf[pingPorts](m)
	if !ok || p.Reply != "pong" {
		t.Fatalf("ports = %+v %v", p, ok)
	}
	if _, ok := PortsOf[string](m); ok {
		t.Fatal("wrong type must not match")
	}
	if _, ok := PortsOf[pingPorts](New("meta", "/meta", nil)); ok {
		t.Fatal("nil ports must not match")
	}
	if _, ok := PortsOf[pingPorts](nil); ok {
		t.Fatal("nil module must not match")
	}
}
