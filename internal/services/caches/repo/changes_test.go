package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "cgeo/internal/platform/errors"
	"cgeo/internal/services/caches/domain"
)

type fakeCH struct {
	table string
	rows  [][]any
	err   error

	sql  string
	args []any
	read []changeRow
}

func (f *fakeCH) Select(_ context.Context, dest any, sql string, args ...any) error {
	f.sql, f.args = sql, args
	if f.err != nil {
		return f.err
	}
	*(dest.(*[]changeRow)) = f.read
	return nil
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table = table
	f.rows = rows
	return f.err
}

func (f *fakeCH) Close() error { return nil }

func TestCHChanges_Record(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	f := &fakeCH{}
	sink := NewCHChanges(f)

	err := sink.RecordTextChanges(context.Background(), []domain.TextChange{
		{Geocode: "GC1", Field: domain.FieldDescription, Checksum: 0xCBF43926, At: at},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if f.table != ChangesTable || len(f.rows) != 1 {
		t.Fatalf("table=%q rows=%d", f.table, len(f.rows))
	}
	row := f.rows[0]
	if row[0] != "GC1" || row[1] != "description" || row[2] != uint32(0xCBF43926) {
		t.Fatalf("row = %v", row)
	}
	if got := row[3].(time.Time); got.Location() != time.UTC || !got.Equal(at) {
		t.Fatalf("at = %v", got)
	}
}

func TestCHChanges_DisabledAndErrors(t *testing.T) {
	t.Parallel()

	if NewCHChanges(nil) != nil {
		t.Fatal("nil clickhouse should give a nil sink")
	}
	var sink *CHChanges
	if err := sink.RecordTextChanges(context.Background(), []domain.TextChange{{Geocode: "GC1"}}); err != nil {
		t.Fatalf("nil sink should be a no-op, got %v", err)
	}

	f := &fakeCH{err: errors.New("down")}
	err := NewCHChanges(f).RecordTextChanges(context.Background(), []domain.TextChange{{Geocode: "GC1"}})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestCHChanges_Read(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	f := &fakeCH{read: []changeRow{{Geocode: "GC1", Field: "description", Checksum: 7, At: at}}}
	got, err := NewCHChanges(f).TextChanges(context.Background(), "GC1", 20)
	if err != nil || len(got) != 1 {
		t.Fatalf("TextChanges = %v %v", got, err)
	}
	if got[0].Checksum != 7 || got[0].At.Location() != time.UTC || !got[0].At.Equal(at) {
		t.Fatalf("change = %+v", got[0])
	}
	if len(f.args) != 2 || f.args[0] != "GC1" || f.args[1] != uint64(20) {
		t.Fatalf("args = %v", f.args)
	}

	var disabled *CHChanges
	if _, err := disabled.TextChanges(context.Background(), "GC1", 1); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("nil sink: %v", err)
	}
	f.err = errors.New("down")
	if _, err := NewCHChanges(f).TextChanges(context.Background(), "GC1", 1); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}
