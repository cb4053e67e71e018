// Package module wires calendar export into the API
package module

import (
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/calendar/domain"
	calhttp "cgeo/internal/services/api/calendar/http"
	calsvc "cgeo/internal/services/api/calendar/service"
)

// Ports are the calendar module ports
type Ports struct {
	Calendar domain.ServicePort
}

func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	svc := calsvc.New()
	opts = append([]modkit.Option{modkit.WithPorts(Ports{Calendar: svc})}, opts...)
	return modkit.New("calendar", "/calendar", func(r httpkit.Router) { calhttp.Register(r, svc) }, opts...)
}
