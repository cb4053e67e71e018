// Package module wires the caches API
package module

import (
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	chttp "cgeo/internal/services/api/caches/http"
	csvc "cgeo/internal/services/api/caches/service"
	cachesdom "cgeo/internal/services/caches/domain"
)

// Ports carries the store port taken from services/caches
// a nil Store keeps the routes mounted but answers 503
type Ports struct {
	Store cachesdom.StorePort
}

func New(deps modkit.Deps, ports Ports, opts ...modkit.Option) modkit.Module {
	if ports.Store == nil {
		deps.Log.Warn().Msg("caches API mounted without storage")
	}
	svc := csvc.New(ports.Store)
	opts = append([]modkit.Option{modkit.WithPorts(ports)}, opts...)
	return modkit.New("caches-api", "/caches", func(r httpkit.Router) { chttp.Register(r, svc) }, opts...)
}
