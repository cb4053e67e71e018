package store

import (
	"context"

	"cgeo/internal/core/version"
	"cgeo/internal/platform/logger"
	chx "cgeo/internal/platform/store/ch"
)

// openCH connects clickhouse, the client reports AppName and the build tag as client info
func openCH(ctx context.Context, cfg Config, log logger.Logger) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:         cfg.CH.URL,
		Role:        cfg.AppName,
		Tag:         version.Tag(),
		PingTimeout: cfg.CH.PingTimeout,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("app", cfg.AppName).Msg("clickhouse connected")
	return c, nil
}
