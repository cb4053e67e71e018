// Package modkit is the contract between the API root and its modules
// a module mounts routes under its prefix and may hand ports to modules built after it
package modkit

import (
	"net/http"
	"strings"

	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/modkit/repokit"
	"cgeo/internal/platform/config"
	"cgeo/internal/platform/logger"
	"cgeo/internal/platform/store"
)

// Module is what api.Mount iterates over
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	// Ports is the module's own port struct, nil when it exports nothing
	Ports() any
}

// Deps are the process wide dependencies, PG and CH stay nil when disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// Option tunes a Routes value
type Option func(*Routes)

// WithPrefix overrides the default mount prefix
func WithPrefix(prefix string) Option {
	return func(m *Routes) { m.prefix = prefix }
}

// WithMiddlewares runs mw, in order, in front of the module routes only
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(m *Routes) { m.mw = append(m.mw, mw...) }
}

// WithPorts sets what Ports returns
func WithPorts(p any) Option {
	return func(m *Routes) { m.ports = p }
}

// Routes is the Module every service module returns
type Routes struct {
	name     string
	prefix   string
	mw       []func(http.Handler) http.Handler
	ports    any
	register func(httpkit.Router)
}

// New builds a module that mounts register under prefix, a nil register mounts nothing
func New(name, prefix string, register func(httpkit.Router), opts ...Option) *Routes {
	m := &Routes{name: name, prefix: prefix, register: register}
	for _, o := range opts {
		o(m)
	}
	if m.prefix != "" && !strings.HasPrefix(m.prefix, "/") {
		m.prefix = "/" + m.prefix
	}
	m.prefix = strings.TrimSuffix(m.prefix, "/")
	return m
}

func (m *Routes) Name() string   { return m.name }
func (m *Routes) Prefix() string { return m.prefix }
func (m *Routes) Ports() any     { return m.ports }

// MountRoutes attaches the module below r
func (m *Routes) MountRoutes(r httpkit.Router) {
	if m.register == nil {
		return
	}
	if m.prefix == "" && len(m.mw) == 0 {
		m.register(r)
		return
	}
	prefix := m.prefix
	if prefix == "" {
		prefix = "/"
	}
	r.Route(prefix, func(sub httpkit.Router) {
		sub.Use(m.mw...)
		m.register(sub)
	})
}

// PortsOf returns m's ports when they are a T
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	p, ok := m.Ports().(T)
	return p, ok
}
