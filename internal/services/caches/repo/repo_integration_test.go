//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cgeo/internal/core/cache"
	"cgeo/internal/modkit/repokit"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "cgeo",
				"POSTGRES_PASSWORD": "cgeo",
				"POSTGRES_DB":       "cgeo",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://cgeo:cgeo@%s:%s/cgeo?sslmode=disable", host, port.Port())
}

func TestPG_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "cgeo-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if err := Migrate(ctx, st.PG); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// twice is fine
	if err := Migrate(ctx, st.PG); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}

	hidden := time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC)
	at := time.Now().UTC().Truncate(time.Millisecond)
	err = st.PG.Tx(ctx, func(q repokit.Queryer) error {
		s := NewPG().Bind(q)
		if _, found, err := s.DescriptionChecksum(ctx, "GC1"); err != nil || found {
			return fmt.Errorf("fresh table: found=%v err=%v", found, err)
		}
		for _, c := range []cache.Geocache{
			{Geocode: "GC1", Name: "Mühle", Owner: "anna", Description: "<p>x</p>", DescriptionChecksum: 0xFFFFFFFF, Hidden: hidden},
			{Geocode: "GC2", Name: "Bach", Owner: "anna", Disabled: true},
			{Geocode: "GC3", Name: "Zaun", Owner: "ben"},
		} {
			if err := s.Upsert(ctx, c, at); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewPG().Bind(st.PG)
	sum, found, err := s.DescriptionChecksum(ctx, "GC1")
	if err != nil || !found || sum != 0xFFFFFFFF {
		t.Fatalf("checksum = %x %v %v", sum, found, err)
	}

	got, err := s.Get(ctx, "GC1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Mühle" || !got.Hidden.Equal(hidden) {
		t.Fatalf("cache = %+v", got)
	}
	if _, err := s.Get(ctx, "GC404"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing cache: %v", err)
	}

	mine, err := s.ListByOwner(ctx, "anna", "", 10)
	if err != nil || len(mine) != 2 || mine[0].Geocode != "GC1" || !mine[1].Disabled {
		t.Fatalf("ListByOwner = %+v %v", mine, err)
	}
	all, err := s.ListByOwner(ctx, "", "", 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("all = %d %v", len(all), err)
	}
	next, err := s.ListByOwner(ctx, "", "GC1", 1)
	if err != nil || len(next) != 1 || next[0].Geocode != "GC2" {
		t.Fatalf("page after GC1 = %+v %v", next, err)
	}
}
