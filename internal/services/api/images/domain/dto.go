// Package domain holds DTOs for the images http and service contracts
package domain

import "cgeo/internal/core/gallery"

// LocateInput names a downloaded image of a cache
type LocateInput struct {
	Geocode string `json:"geocode" validate:"required,geocode"  example:"GC12AB"`
	URL     string `json:"url"     validate:"required,max=2048" example:"https://img.example/spoiler.jpg"`
}

// LocateOutput is the GPS position found in the image metadata
type LocateOutput struct {
	Found     bool    `json:"found"               example:"true"`
	Latitude  float64 `json:"latitude,omitempty"  example:"52.516667"`
	Longitude float64 `json:"longitude,omitempty" example:"13.4"`
	Position  string  `json:"position,omitempty"  example:"N 52° 31.000' E 013° 24.000'"`
	MimeType  string  `json:"mime_type"           example:"image/jpeg"`
}

// Image list kinds
const (
	KindLog     = "log"
	KindSpoiler = "spoiler"
)

// DescribeInput is an image list to render for display
type DescribeInput struct {
	Kind   string          `json:"kind"   validate:"required,oneof=log spoiler" example:"spoiler"`
	Images []gallery.Image `json:"images" validate:"max=500,dive"`
}

// DescribedImage is one rendered list entry
type DescribedImage struct {
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	MimeType string `json:"mime_type"`
}

// DescribeOutput is the rendered list with its heading
type DescribeOutput struct {
	Title  string           `json:"title"`
	Images []DescribedImage `json:"images"`
}
