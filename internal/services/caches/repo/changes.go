package repo

import (
	"context"
	"time"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/store"
	"cgeo/internal/services/caches/domain"
)

// ChangesTable receives one row per text change
//
//	CREATE TABLE cache_text_changes (
//	  geocode  LowCardinality(String),
//	  field    LowCardinality(String),
//	  checksum UInt32,
//	  at       DateTime64(3, 'UTC')
//	) ENGINE = MergeTree ORDER BY (geocode, at)
const ChangesTable = "cache_text_changes"

// CHChanges writes change events to clickhouse
type CHChanges struct {
	ch store.Clickhouse
}

var _ domain.ChangeSink = (*CHChanges)(nil)

// NewCHChanges returns a sink on ch, nil when clickhouse is disabled
func NewCHChanges(ch store.Clickhouse) *CHChanges {
	if ch == nil {
		return nil
	}
	return &CHChanges{ch: ch}
}

// RecordTextChanges implements domain.ChangeSink
func (c *CHChanges) RecordTextChanges(ctx context.Context, xs []domain.TextChange) error {
	if c == nil || len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, x := range xs {
		rows = append(rows, []any{x.Geocode, x.Field, x.Checksum, x.At.UTC()})
	}
	if err := c.ch.Insert(ctx, ChangesTable, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "record text changes")
	}
	return nil
}

// changeRow is a cache_text_changes row as the driver scans it
type changeRow struct {
	Geocode  string    `ch:"geocode"`
	Field    string    `ch:"field"`
	Checksum uint32    `ch:"checksum"`
	At       time.Time `ch:"at"`
}

// TextChanges implements domain.ChangeSink
func (c *CHChanges) TextChanges(ctx context.Context, geocode string, limit int) ([]domain.TextChange, error) {
	if c == nil {
		return nil, perr.Unavailablef("change history disabled")
	}
	var rows []changeRow
	err := c.ch.Select(ctx, &rows,
		`SELECT geocode, field, checksum, at FROM `+ChangesTable+` WHERE geocode = ? ORDER BY at DESC LIMIT ?`,
		geocode, uint64(limit))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read text changes")
	}
	out := make([]domain.TextChange, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TextChange{Geocode: r.Geocode, Field: r.Field, Checksum: r.Checksum, At: r.At.UTC()})
	}
	return out, nil
}
