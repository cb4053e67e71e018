package module

import (
	"cgeo/internal/core/textutil"
	"cgeo/internal/platform/config"

	"golang.org/x/text/language"
)

// Options holds configuration settings for the caches module
type Options struct {
	HardLimit int
	Locale    language.Tag
	// Migrate creates the caches table on startup
	Migrate bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CGEO_")
	loc := textutil.DefaultLocale
	if s := cf.MayString("LOCALE", ""); s != "" {
		if tag, err := language.Parse(s); err == nil {
			loc = tag
		}
	}
	return Options{
		HardLimit: cf.MayInt("CACHES_HARD_LIMIT", 500),
		Locale:    loc,
		Migrate:   cf.MayBool("CACHES_MIGRATE", false),
	}
}
