// @title         cgeo API
// @version       0.1.0
// @description   Text normalization, cache storage, calendar export and image lookups

// Command cgeo-api serves the cgeo HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cgeo/internal/core/textutil"
	"cgeo/internal/core/version"
	"cgeo/internal/modkit/httpkit"
	"cgeo/internal/platform/config"
	"cgeo/internal/platform/logger"
	phttp "cgeo/internal/platform/net/http"
	"cgeo/internal/platform/store"
	"cgeo/internal/services/api"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

func main() {
	version.SetService("cgeo-api")
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:           "cgeo-api",
		Short:         "Serve the cgeo HTTP API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := config.New()
			if path != "" {
				c, err := config.Load(path)
				if err != nil {
					return err
				}
				root = c
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, root)
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "TOML config file, environment variables win over it")
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := version.Info()
			cmd.Printf("%s %s (%s, %s, %s)\n", v.Service, v.Version, v.Commit, v.Date, v.Go)
		},
	})
	return cmd
}

func serve(ctx context.Context, root config.Conf) error {
	l := logger.Init(logger.FromEnv(root))

	apiCfg := root.Prefix("CORE_API_")
	appCfg := root.Prefix("CGEO_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	// collation locale is process wide, set it before any module reads it
	locale := textutil.DefaultLocale
	if s := appCfg.MayString("LOCALE", ""); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid CGEO_LOCALE %q: %w", s, err)
		}
		locale = tag
	}
	textutil.DefaultLocale = locale

	// both stores are optional, the text endpoints work without them
	pgURL := pgCfg.MayString("DBURL", "")
	chURL := chCfg.MayString("DBURL", "")
	st, err := store.Open(ctx,
		store.Config{
			AppName: "cgeo-api",
			PG: store.PGConfig{
				Enabled:     pgURL != "",
				URL:         pgURL,
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled:     chURL != "",
				URL:         chURL,
				PingTimeout: chCfg.MayDuration("PING_TIMEOUT", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Ping(ctx); err != nil {
		l.Warn().Err(err).Msg("backend ping failed, serving degraded")
	}

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Locale:         locale,
		ImageRoot:      appCfg.MayString("IMAGE_ROOT", ""),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Stack: httpkit.StackOptions{
			Origins: apiCfg.MayCSV("CORS_ORIGINS", nil),
			Timeout: apiCfg.MayDuration("TIMEOUT", 0),
			SlowLog: apiCfg.MayDuration("SLOW_REQUEST", 0),
			RateLimit: httpkit.RateLimitOptions{
				PerSecond: apiCfg.MayFloat("RATE_PER_SECOND", 0),
				Burst:     apiCfg.MayInt("RATE_BURST", 20),
				Idle:      apiCfg.MayDuration("RATE_IDLE", 0),
			},
		},
	})

	l.Info().
		Str("addr", srv.Addr()).
		Str("locale", locale.String()).
		Bool("pg", pgURL != "").
		Bool("ch", chURL != "").
		Msg("cgeo-api starting")
	return srv.Run(ctx)
}
