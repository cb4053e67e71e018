// Package http is the JSON transport the API modules mount on
// routes are chi underneath, handlers return Response values
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handler is a plain handler func, kept as an alias so closures need no conversion
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the part of chi modules are allowed to see
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))
	Mux() http.Handler
}

type chiRouter struct{ r chi.Router }

// AdaptChi exposes a chi router, *chi.Mux included, as a Router
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

func (c chiRouter) Get(p string, h Handler)                  { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)                 { c.r.Post(p, h) }
func (c chiRouter) Handle(p string, h http.Handler)          { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }
func (c chiRouter) Mux() http.Handler                        { return c.r }

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(sub chi.Router) { fn(chiRouter{sub}) })
}

// URLParam is the named path segment of the matched route, empty when absent
func URLParam(r *http.Request, name string) string { return chi.URLParam(r, name) }

// MountProfiler serves net/http/pprof under prefix when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	pprof := http.StripPrefix(prefix, chimw.Profiler())
	r.Handle(prefix, pprof)
	r.Handle(prefix+"/*", pprof)
}
