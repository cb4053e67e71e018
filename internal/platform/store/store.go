// Package store opens the optional Postgres and ClickHouse backends
// repos see RowQuerier and TxRunner, change sinks see Clickhouse
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cgeo/internal/platform/logger"
)

type (
	Row interface {
		Scan(dest ...any) error
	}

	// Rows must be closed by the caller
	Rows interface {
		Row
		Next() bool
		Err() error
		Close()
	}

	CommandTag interface {
		String() string
		RowsAffected() int64
	}

	// RowQuerier is a pool or an open transaction
	RowQuerier interface {
		Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) Row
	}

	// TxRunner commits when fn returns nil and rolls back otherwise
	TxRunner interface {
		RowQuerier
		Tx(ctx context.Context, fn func(q RowQuerier) error) error
	}

	// Clickhouse appends batches and reads them back into structs
	Clickhouse interface {
		Insert(ctx context.Context, table string, rows [][]any) error
		Select(ctx context.Context, dest any, sql string, args ...any) error
		Close() error
	}

	Pinger interface{ Ping(context.Context) error }
)

// Config picks the backends, AppName is reported to both
type Config struct {
	AppName string
	PG      PGConfig
	CH      CHConfig
}

type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	// ConnectAttempts bounds the startup ping loop, 0 means 20
	ConnectAttempts int
}

type CHConfig struct {
	Enabled     bool
	URL         string
	PingTimeout time.Duration
}

type Option func(*Store) error

func WithLogger(log logger.Logger) Option {
	return func(s *Store) error { s.Log = log; return nil }
}

// Store holds the enabled backends, a disabled one is nil
type Store struct {
	Log logger.Logger
	PG  TxRunner
	CH  Clickhouse
}

// Open connects every enabled backend, on failure the ones already open are closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Get()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s.Log); err != nil {
			return nil, fmt.Errorf("store: postgres: %w", err)
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s.Log); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: clickhouse: %w", err)
		}
	}
	return s, nil
}

// Ping checks every enabled backend that can be pinged
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	for name, b := range map[string]any{"pg": s.PG, "ch": s.CH} {
		if p, ok := b.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
