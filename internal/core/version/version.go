// Package version provides information about the build of the cgeo binaries
package version

import "runtime"

// BuildInfo holds version information about a build
type BuildInfo struct {
	Service string `json:"service" example:"cgeo-api"`
	Version string `json:"version" example:"v0.3.0"`
	Commit  string `json:"commit"  example:"9f2c1ab"`
	Date    string `json:"date"    example:"2026-10-01"`
	Go      string `json:"go"      example:"go1.25.0"`
}

// Info returns the build information for the running binary
//
// Set via -ldflags "-X 'cgeo/internal/core/version.version=v0.3.0'
// -X 'cgeo/internal/core/version.commit=9f2c1ab' -X 'cgeo/internal/core/version.date=2026-10-01'"
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

// Tag is the short version string reported to backends
func Tag() string { return version }

// SetService names the running binary, called once from main
func SetService(name string) {
	if name != "" {
		service = name
	}
}

var (
	service = "cgeo"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
