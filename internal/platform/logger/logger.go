// Package logger owns the process zerolog logger and the request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"cgeo/internal/platform/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger, aliased so callers import only this package
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level   string
	Format  string // console or json
	Service string
	Caller  bool
	Writer  io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv(cfg config.Conf) Options {
	c := cfg.Prefix("LOG_")
	return Options{
		Level:   c.MayString("LEVEL", "info"),
		Format:  strings.ToLower(c.MayString("FORMAT", "console")),
		Service: c.MayString("SERVICE", ""),
		Caller:  c.MayBool("CALLER", false),
	}
}

var root atomic.Pointer[Logger]

// Init builds the root logger, later calls replace it
// zerolog's global log follows so libraries logging through it share the output
func Init(opt Options) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opt.Writer
	if w == nil {
		w = os.Stderr
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	b := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		b = b.Str("service", opt.Service)
	}
	if opt.Caller {
		b = b.Caller()
	}
	l := b.Logger()
	root.Store(&l)
	log.Logger = l
	return &l
}

// Get is the root logger, built from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	return Init(FromEnv(config.New()))
}

// Named is a child of the root tagged with a component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

// WithRequest stores a child logger carrying request_id and locale on ctx
// empty values are skipped, fields already on the ctx logger are kept
func WithRequest(ctx context.Context, reqID, locale string) context.Context {
	b := C(ctx).With()
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if locale != "" {
		b = b.Str("locale", locale)
	}
	return b.Logger().WithContext(ctx)
}

// C is the logger stored on ctx by WithRequest, the root when there is none
func C(ctx context.Context) *Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return Get()
}
