// Package repo provides the caches repository implementations
package repo

import (
	"context"
	"errors"
	"time"

	"cgeo/internal/core/cache"
	"cgeo/internal/modkit/repokit"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the caches repository
type Storage interface {
	// DescriptionChecksum returns the stored checksum and locks the row for the running tx
	DescriptionChecksum(ctx context.Context, geocode string) (sum uint32, found bool, err error)
	Upsert(ctx context.Context, c cache.Geocache, at time.Time) error
	Get(ctx context.Context, geocode string) (cache.Geocache, error)
	// ListByOwner pages in geocode order, after is the last geocode of the previous page
	ListByOwner(ctx context.Context, owner, after string, limit int) ([]cache.Geocache, error)
}

// Schema creates the caches table when it is missing
const Schema = `
CREATE TABLE IF NOT EXISTS caches (
	geocode         text PRIMARY KEY,
	name            text NOT NULL DEFAULT '',
	owner           text NOT NULL DEFAULT '',
	type            text NOT NULL DEFAULT '',
	disabled        boolean NOT NULL DEFAULT false,
	archived        boolean NOT NULL DEFAULT false,
	found           boolean NOT NULL DEFAULT false,
	description     text NOT NULL DEFAULT '',
	description_crc bigint NOT NULL DEFAULT 0,
	hidden_at       timestamptz,
	coords          text NOT NULL DEFAULT '',
	updated_at      timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS caches_owner_idx ON caches (owner)`

// Migrate applies Schema, it is safe to run on every start
func Migrate(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return perr.FromPostgres(err, "migrate caches")
	}
	return nil
}

const columns = `geocode, name, owner, type, disabled, archived, found, description, description_crc, hidden_at, coords`

// DescriptionChecksum implements Storage
func (s *pg) DescriptionChecksum(ctx context.Context, geocode string) (uint32, bool, error) {
	crc, err := store.Scalar[int64](ctx, s.q, `SELECT description_crc FROM caches WHERE geocode = $1 FOR UPDATE`, geocode)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.FromPostgresf(err, "read checksum of %s", geocode)
	}
	return uint32(crc), true, nil
}

// Upsert implements Storage
func (s *pg) Upsert(ctx context.Context, c cache.Geocache, at time.Time) error {
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO caches (`+columns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (geocode) DO UPDATE SET
			name = EXCLUDED.name,
			owner = EXCLUDED.owner,
			type = EXCLUDED.type,
			disabled = EXCLUDED.disabled,
			archived = EXCLUDED.archived,
			found = EXCLUDED.found,
			description = EXCLUDED.description,
			description_crc = EXCLUDED.description_crc,
			hidden_at = EXCLUDED.hidden_at,
			coords = EXCLUDED.coords,
			updated_at = EXCLUDED.updated_at`,
		c.Geocode, c.Name, c.Owner, c.Type, c.Disabled, c.Archived, c.Found,
		c.Description, int64(c.DescriptionChecksum), nullTime(c.Hidden), c.Coords, at,
	)
	if err != nil {
		return perr.FromPostgresWithField(err, "upsert cache "+c.Geocode)
	}
	return nil
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, geocode string) (cache.Geocache, error) {
	c, err := store.One(ctx, s.q, scanCache, `SELECT `+columns+` FROM caches WHERE geocode = $1`, geocode)
	if errors.Is(err, perr.ErrNotFound) {
		return cache.Geocache{}, perr.NotFoundf("cache %s not found", geocode)
	}
	if err != nil {
		return cache.Geocache{}, perr.FromPostgresf(err, "get cache %s", geocode)
	}
	return c, nil
}

// ListByOwner implements Storage, an empty owner matches every cache
func (s *pg) ListByOwner(ctx context.Context, owner, after string, limit int) ([]cache.Geocache, error) {
	out, err := store.Many(ctx, s.q, scanCache, `
		SELECT `+columns+`
		FROM caches
		WHERE ($1 = '' OR owner = $1) AND geocode > $2
		ORDER BY geocode
		LIMIT $3`, owner, after, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list caches")
	}
	return out, nil
}

func scanCache(r repokit.Row) (cache.Geocache, error) {
	var (
		c      cache.Geocache
		crc    int64
		hidden *time.Time
	)
	if err := r.Scan(
		&c.Geocode, &c.Name, &c.Owner, &c.Type, &c.Disabled, &c.Archived, &c.Found,
		&c.Description, &crc, &hidden, &c.Coords,
	); err != nil {
		return cache.Geocache{}, err
	}
	c.DescriptionChecksum = uint32(crc)
	if hidden != nil {
		c.Hidden = hidden.UTC()
	}
	return c, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
