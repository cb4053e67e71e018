// Package gallery describes the log and spoiler images attached to a cache, where their
// downloads live on disk and which of them carry a GPS position in their EXIF data
package gallery

import (
	"fmt"
	"math"
	"mime"
	"net/url"
	"path"
	"strings"

	"cgeo/internal/core/htmltext"
)

// ImageType tells log images from spoiler images
type ImageType int

const (
	// LogImages are attached to logs
	LogImages ImageType = iota
	// SpoilerImages are attached to the listing
	SpoilerImages
)

// Title is the list heading for t
func (t ImageType) Title() string {
	switch t {
	case LogImages:
		return "Log images"
	case SpoilerImages:
		return "Spoiler images"
	default:
		return "Images"
	}
}

// Image is one entry of an image list, Title and Description may hold HTML
type Image struct {
	URL         string `json:"url"         validate:"required,url,max=2048"`
	Title       string `json:"title"       validate:"omitempty,max=1024"`
	Description string `json:"description" validate:"omitempty,max=65536"`
}

// HasTitle reports whether the image has a non-blank title
func (i Image) HasTitle() bool { return strings.TrimSpace(i.Title) != "" }

// HasDescription reports whether the image has a non-blank description
func (i Image) HasDescription() bool { return strings.TrimSpace(i.Description) != "" }

// Caption is the plain text title and description, separated by a blank line
func (i Image) Caption() string {
	var parts []string
	if i.HasTitle() {
		parts = append(parts, string(htmltext.FromHTMLTrimmed(i.Title)))
	}
	if i.HasDescription() {
		parts = append(parts, string(htmltext.FromHTMLTrimmed(i.Description)))
	}
	return strings.Join(parts, "\n\n")
}

// MimeTypeForURL guesses the MIME type from the URL path extension, image/* when unknown
func MimeTypeForURL(raw string) string {
	if t := mime.TypeByExtension(extension(raw)); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	return "image/*"
}

// extension returns the lower-cased extension of the URL path, query and fragment excluded
func extension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}

// GeoLocation is a WGS84 position read from image metadata
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether g is the 0,0 position cameras write when they had no fix
func (g GeoLocation) IsZero() bool { return g.Latitude == 0 && g.Longitude == 0 }

// String formats g in degrees and decimal minutes, e.g. N 52° 31.000' E 013° 24.000'
func (g GeoLocation) String() string {
	return formatDM(g.Latitude, "N", "S", 2) + " " + formatDM(g.Longitude, "E", "W", 3)
}

func formatDM(v float64, pos, neg string, degWidth int) string {
	hemi := pos
	if v < 0 {
		hemi = neg
	}
	// work in thousandths of a minute so rounding carries into the degrees
	t := int64(math.Round(math.Abs(v) * 60000))
	deg, rest := t/60000, t%60000
	return fmt.Sprintf("%s %0*d° %02d.%03d'", hemi, degWidth, deg, rest/1000, rest%1000)
}
