// Command cgeo-text applies the cache listing text helpers to stdin
package main

import (
	"os"

	"cgeo/internal/adapters/textcli"
	"cgeo/internal/core/textutil"
	"cgeo/internal/core/version"
	"cgeo/internal/platform/config"
	"cgeo/internal/platform/logger"

	"golang.org/x/text/language"
)

func main() {
	version.SetService("cgeo-text")
	l := logger.Named("cgeo-text")

	if s := config.New().Prefix("CGEO_").MayString("LOCALE", ""); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			l.Fatal().Err(err).Str("locale", s).Msg("invalid CGEO_LOCALE")
		}
		textutil.DefaultLocale = tag
	}

	root := textcli.NewRootCmd()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		l.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
