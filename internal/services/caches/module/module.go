// Package module implements the caches service module
package module

import (
	"context"
	"time"

	"cgeo/internal/modkit"
	"cgeo/internal/services/caches/domain"
	"cgeo/internal/services/caches/repo"
	"cgeo/internal/services/caches/service"
)

// Ports exposed by the caches module
type Ports struct {
	Store domain.StorePort
}

// New builds the caches storage module, it mounts no routes, api/caches does
// change events go to clickhouse when deps.CH is set, without postgres the Store port is nil
func New(deps modkit.Deps) modkit.Module {
	if deps.PG == nil {
		deps.Log.Warn().Msg("caches: postgres disabled, cache storage unavailable")
		return modkit.New("caches", "", nil, modkit.WithPorts(Ports{}))
	}
	opts := FromConfig(deps.Cfg)
	if opts.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repo.Migrate(ctx, deps.PG); err != nil {
			deps.Log.Error().Err(err).Msg("caches: schema migration failed")
		}
	}

	var sink domain.ChangeSink
	if ch := repo.NewCHChanges(deps.CH); ch != nil {
		sink = ch
	}
	svc := service.New(deps.PG, repo.NewPG(), sink, service.Config{
		HardLimit: opts.HardLimit,
		Locale:    opts.Locale,
	})
	return modkit.New("caches", "", nil, modkit.WithPorts(Ports{Store: svc}))
}
