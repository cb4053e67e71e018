package gallery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"cgeo/internal/core/textutil"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/logger"

	"github.com/rwcarlsen/goexif/exif"
)

// reGeocode restricts geocodes to a single safe path segment
var reGeocode = regexp.MustCompile(`^[A-Za-z0-9]{2,16}$`)

// Storage resolves downloaded images below Root, one directory per cache
type Storage struct {
	Root string
}

// Path is where the download of url for geocode is stored
// the file name is the CRC-32 of the URL plus the URL extension
func (s Storage) Path(geocode, url string) (string, error) {
	if !reGeocode.MatchString(geocode) {
		return "", perr.WithField(perr.InvalidArgf("invalid geocode %q", geocode), "geocode")
	}
	if url == "" {
		return "", perr.WithField(perr.InvalidArgf("image url is required"), "url")
	}
	ext := extension(url)
	if len(ext) > 8 || !reExt.MatchString(ext) {
		ext = ""
	}
	name := fmt.Sprintf("%08x%s", textutil.Checksum(url), ext)
	return filepath.Join(s.Root, geocode, name), nil
}

var reExt = regexp.MustCompile(`^(\.[a-z0-9]+)?$`)

// Locate reads the GPS position of the stored download of url
// a missing file or undecodable metadata is logged and reported as not found,
// the caller only decides whether to offer navigation
func (s Storage) Locate(ctx context.Context, geocode, url string) (GeoLocation, bool, error) {
	p, err := s.Path(geocode, url)
	if err != nil {
		return GeoLocation{}, false, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return GeoLocation{}, false, perr.NotFoundf("image %s not stored for %s", url, geocode)
		}
		return GeoLocation{}, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "open image")
	}
	defer func() { _ = f.Close() }()

	loc, ok, err := Locate(ctx, f)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("geocode", geocode).Str("url", url).Msg("image metadata unreadable")
		return GeoLocation{}, false, nil
	}
	return loc, ok, nil
}

// Locate reads the EXIF GPS position from r (JPEG, TIFF or a raw EXIF block)
// images without GPS tags, or with the 0,0 placeholder, report ok=false
func Locate(ctx context.Context, r io.Reader) (GeoLocation, bool, error) {
	if err := ctx.Err(); err != nil {
		return GeoLocation{}, false, err
	}
	x, err := exif.Decode(r)
	if err != nil {
		return GeoLocation{}, false, err
	}
	lat, lon, err := x.LatLong()
	if err != nil {
		if exif.IsTagNotPresentError(err) {
			return GeoLocation{}, false, nil
		}
		return GeoLocation{}, false, err
	}
	loc := GeoLocation{Latitude: lat, Longitude: lon}
	if loc.IsZero() {
		return GeoLocation{}, false, nil
	}
	return loc, true, nil
}
