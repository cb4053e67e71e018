// Package module wires text operations into the API
package module

import (
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/text/domain"
	texthttp "cgeo/internal/services/api/text/http"
	textsvc "cgeo/internal/services/api/text/service"

	"golang.org/x/text/language"
)

// Ports are the text module ports
type Ports struct {
	Text domain.ServicePort
}

// New builds the text module, locale is the default sort locale
func New(deps modkit.Deps, locale language.Tag, opts ...modkit.Option) modkit.Module {
	svc := textsvc.New(locale)
	deps.Log.Debug().Str("locale", locale.String()).Msg("text module ready")

	opts = append([]modkit.Option{modkit.WithPorts(Ports{Text: svc})}, opts...)
	return modkit.New("text", "/text", func(r httpkit.Router) { texthttp.Register(r, svc) }, opts...)
}
