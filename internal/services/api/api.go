// Package api assembles the modules into the versioned HTTP API
package api

import (
	"cgeo/internal/modkit"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/modkit/swaggerkit"
	"cgeo/internal/platform/config"
	"cgeo/internal/platform/logger"
	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/platform/store"

	cachesapi "cgeo/internal/services/api/caches/module"
	calendarmod "cgeo/internal/services/api/calendar/module"
	imagesmod "cgeo/internal/services/api/images/module"
	metamod "cgeo/internal/services/api/meta/module"
	textmod "cgeo/internal/services/api/text/module"
	cachesmod "cgeo/internal/services/caches/module"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options are the API options, a nil Store runs without persistence
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Locale         language.Tag
	ImageRoot      string
	EnableSwagger  bool
	EnableProfiler bool
	Stack          httpkit.StackOptions
}

// Modules builds the API modules in mount order
// the caches storage module comes first so its Store port can feed the caches API
func Modules(opt Options) []modkit.Module {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Get()
	}
	if opt.Store != nil {
		deps.PG, deps.CH = opt.Store.PG, opt.Store.CH
	}

	caches := cachesmod.New(deps)
	storage, _ := modkit.PortsOf[cachesmod.Ports](caches)

	return []modkit.Module{
		metamod.New(deps),
		textmod.New(deps, opt.Locale),
		calendarmod.New(deps),
		imagesmod.New(deps, opt.ImageRoot),
		caches,
		cachesapi.New(deps, cachesapi.Ports{Store: storage.Store}),
	}
}

// Mount mounts docs, the profiler and /api/v1 with every module on r
func Mount(r phttp.Router, opt Options) []modkit.Module {
	mods := Modules(opt)

	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name())
	}
	swaggerkit.Register(swaggerkit.Tags(names...))
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := opt.Stack
	if stack.Locale == language.Und {
		stack.Locale = opt.Locale
	}
	if stack.Supported == nil {
		stack.Supported = collate.Supported()
	}
	httpkit.MountAPI(r, "v1", httpkit.Stack(stack), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return mods
}
