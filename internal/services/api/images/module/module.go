// Package module wires image lookups into the API
package module

import (
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/images/domain"
	imghttp "cgeo/internal/services/api/images/http"
	imgsvc "cgeo/internal/services/api/images/service"
)

// Ports are the images module ports
type Ports struct {
	Images domain.ServicePort
}

// New builds the images module, root is the image download directory
func New(deps modkit.Deps, root string, opts ...modkit.Option) modkit.Module {
	if root == "" {
		deps.Log.Warn().Msg("images: no image root configured")
	}
	svc := imgsvc.New(root)
	opts = append([]modkit.Option{modkit.WithPorts(Ports{Images: svc})}, opts...)
	return modkit.New("images", "/images", func(r httpkit.Router) { imghttp.Register(r, svc) }, opts...)
}
