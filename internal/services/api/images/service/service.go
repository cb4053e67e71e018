// Package service exposes image captions and EXIF positions of stored downloads
package service

import (
	"context"

	"cgeo/internal/core/gallery"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/services/api/images/domain"
)

// Service defines the service contract for images
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	storage gallery.Storage
}

// New creates an images service reading downloads below root
func New(root string) *Svc { return &Svc{storage: gallery.Storage{Root: root}} }

// Locate reads the GPS position of a stored image
func (s *Svc) Locate(ctx context.Context, in domain.LocateInput) (domain.LocateOutput, error) {
	if s.storage.Root == "" {
		return domain.LocateOutput{}, perr.Unavailablef("image storage not configured")
	}
	out := domain.LocateOutput{MimeType: gallery.MimeTypeForURL(in.URL)}
	loc, ok, err := s.storage.Locate(ctx, in.Geocode, in.URL)
	if err != nil {
		return domain.LocateOutput{}, err
	}
	if ok {
		out.Found = true
		out.Latitude = loc.Latitude
		out.Longitude = loc.Longitude
		out.Position = loc.String()
	}
	return out, nil
}

// Describe renders captions and MIME types for an image list
func (s *Svc) Describe(_ context.Context, in domain.DescribeInput) (domain.DescribeOutput, error) {
	var kind gallery.ImageType
	switch in.Kind {
	case domain.KindLog:
		kind = gallery.LogImages
	case domain.KindSpoiler:
		kind = gallery.SpoilerImages
	default:
		return domain.DescribeOutput{}, perr.WithField(perr.InvalidArgf("unknown image kind %q", in.Kind), "kind")
	}
	out := domain.DescribeOutput{Title: kind.Title(), Images: make([]domain.DescribedImage, 0, len(in.Images))}
	for _, img := range in.Images {
		out.Images = append(out.Images, domain.DescribedImage{
			URL:      img.URL,
			Caption:  img.Caption(),
			MimeType: gallery.MimeTypeForURL(img.URL),
		})
	}
	return out, nil
}
