// Package service maps the caches API onto the caches store port
package service

import (
	"context"
	"strings"

	"cgeo/internal/core/cache"
	"cgeo/internal/core/htmltext"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/services/api/caches/domain"
	cachesdom "cgeo/internal/services/caches/domain"
)

// Service defines the service contract for the caches API
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	store cachesdom.StorePort
}

// New creates a caches API service, a nil store makes every call Unavailable
func New(store cachesdom.StorePort) *Svc { return &Svc{store: store} }

func (s *Svc) ready() error {
	if s.store == nil {
		return perr.Unavailablef("cache storage disabled")
	}
	return nil
}

// List returns caches filtered by owner and state, ordered by name
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListOutput, error) {
	if err := s.ready(); err != nil {
		return domain.ListOutput{}, err
	}
	xs, err := s.store.List(ctx, cachesdom.ListInput{
		Owner:  in.Owner,
		State:  in.State,
		Locale: in.Locale,
		Limit:  in.Limit,
	})
	if err != nil {
		return domain.ListOutput{}, err
	}
	out := domain.ListOutput{Caches: make([]domain.CacheView, 0, len(xs))}
	for _, c := range xs {
		v := toView(c)
		// list rows stay small
		v.Description = ""
		out.Caches = append(out.Caches, v)
	}
	return out, nil
}

// Get returns one cache including its rendered description
func (s *Svc) Get(ctx context.Context, geocode string) (domain.CacheView, error) {
	if err := s.ready(); err != nil {
		return domain.CacheView{}, err
	}
	c, err := s.store.Get(ctx, geocode)
	if err != nil {
		return domain.CacheView{}, err
	}
	return toView(c), nil
}

// Upsert stores a cache and reports whether its description changed
func (s *Svc) Upsert(ctx context.Context, in domain.UpsertInput) (domain.UpsertOutput, error) {
	if err := s.ready(); err != nil {
		return domain.UpsertOutput{}, err
	}
	c := fromDTO(in.Cache)
	res, err := s.store.Upsert(ctx, c)
	if err != nil {
		return domain.UpsertOutput{}, err
	}
	return domain.UpsertOutput{
		Geocode:  c.Geocode,
		Created:  res.Created,
		Changed:  res.Changed,
		Checksum: res.Checksum,
	}, nil
}

// History returns the recorded description changes of one cache
func (s *Svc) History(ctx context.Context, geocode string, limit int) (domain.HistoryOutput, error) {
	if err := s.ready(); err != nil {
		return domain.HistoryOutput{}, err
	}
	xs, err := s.store.History(ctx, geocode, limit)
	if err != nil {
		return domain.HistoryOutput{}, err
	}
	out := domain.HistoryOutput{Geocode: strings.ToUpper(strings.TrimSpace(geocode)), Changes: make([]domain.Change, 0, len(xs))}
	for _, x := range xs {
		out.Changes = append(out.Changes, domain.Change{Field: x.Field, Checksum: x.Checksum, At: x.At})
	}
	return out, nil
}

func fromDTO(d domain.Cache) cache.Geocache {
	c := cache.Geocache{
		Geocode:     d.Geocode,
		Name:        d.Name,
		Owner:       d.Owner,
		Type:        d.Type,
		Disabled:    d.Disabled,
		Archived:    d.Archived,
		Found:       d.Found,
		Description: d.Description,
		Coords:      d.Coords,
	}
	if d.Hidden != nil {
		c.Hidden = d.Hidden.UTC()
	}
	return c
}

func toView(c cache.Geocache) domain.CacheView {
	v := domain.CacheView{
		Cache: domain.Cache{
			Geocode:     c.Geocode,
			Name:        c.Name,
			Owner:       c.Owner,
			Type:        c.Type,
			Disabled:    c.Disabled,
			Archived:    c.Archived,
			Found:       c.Found,
			Description: c.Description,
			Coords:      c.Coords,
		},
		DescriptionText:     htmltext.FromHTMLTrimmed(c.Description).String(),
		DescriptionChecksum: c.DescriptionChecksum,
	}
	if !c.Hidden.IsZero() {
		h := c.Hidden.UTC()
		v.Hidden = &h
	}
	return v
}
