// Package module mounts the meta endpoints
package module

import (
	"time"

	"cgeo/internal/core/textutil"
	"cgeo/internal/core/version"
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	metahttp "cgeo/internal/services/api/meta/http"
)

func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Locale:      textutil.DefaultLocale.String(),
	}
	// typed nils would read as enabled
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.CH != nil {
		d.CH = deps.CH
	}
	return modkit.New("meta", "/meta", func(r httpkit.Router) { metahttp.Register(r, d) }, opts...)
}
