// Package http provides http transport for images
package http

import (
	stdhttp "net/http"

	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/services/api/images/domain"
	svc "cgeo/internal/services/api/images/service"
)

// Register mounts image endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LocateInput](r, "/locate", h.locate)
	httpkit.PostJSON[domain.DescribeInput](r, "/describe", h.describe)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /images/locate Images imagesLocate
// @Summary Read the EXIF GPS position of a stored image
// @Tags Images
// @Accept json
// @Produce json
// @Param payload body domain.LocateInput true "Image"
// @Success 200 {object} domain.LocateOutput "ok"
// @Failure 404 {object} httpkit.Envelope "image not stored"
// @Router /images/locate [post]
func (h *handlers) locate(r *stdhttp.Request, in domain.LocateInput) (any, error) {
	return h.svc.Locate(r.Context(), in)
}

// swagger:route POST /images/describe Images imagesDescribe
// @Summary Render captions for a log or spoiler image list
// @Tags Images
// @Accept json
// @Produce json
// @Param payload body domain.DescribeInput true "Images"
// @Success 200 {object} domain.DescribeOutput "ok"
// @Router /images/describe [post]
func (h *handlers) describe(r *stdhttp.Request, in domain.DescribeInput) (any, error) {
	return h.svc.Describe(r.Context(), in)
}
