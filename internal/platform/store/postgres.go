package store

import (
	"context"
	"fmt"
	"time"

	"cgeo/internal/platform/logger"
	"cgeo/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced runs statements on q and reports each one to the pg tracer
type traced struct {
	q  pgxQuerier
	db *pg.PG
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.db.Trace(ctx, sql, args, start, err)
	return ct, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	t.db.Trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{
		r: t.q.QueryRow(ctx, sql, args...),
		done: func(err error) {
			t.db.Trace(ctx, sql, args, start, err)
		},
	}
}

// tracedRow reports once Scan ran, pgx defers the error until then
type tracedRow struct {
	r    pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	r.done(err)
	return err
}

// pgRows narrows pgx.Rows to Rows
type pgRows struct{ pgx.Rows }

// pool is the TxRunner over a pgx pool
type pool struct {
	traced
}

func (p pool) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, p.db.Pool, func(tx pgx.Tx) error {
		return fn(traced{q: tx, db: p.db})
	})
}

// Ping checks a pooled connection answers
func (p pool) Ping(ctx context.Context) error { return p.db.Pool.Ping(ctx) }

// Close drains the pool
func (p pool) Close() error {
	p.db.Close()
	return nil
}

// newPool wraps an open pg client
func newPool(db *pg.PG) pool { return pool{traced{q: db.Pool, db: db}} }

// openPG opens the pool and waits until postgres answers a ping
// backoff doubles from 150ms up to 2s between attempts
func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(log)
	}
	db, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectAttempts
	if attempts <= 0 {
		attempts = 20
	}
	backoff := 150 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		lastErr = db.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			log.Info().Str("app", cfg.AppName).Int("attempt", i+1).Msg("postgres connected")
			return newPool(db), nil
		}
		if ctx.Err() != nil {
			db.Close()
			return nil, ctx.Err()
		}
		log.Warn().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 2*time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("ping failed after %d attempts: %w", attempts, lastErr)
}
