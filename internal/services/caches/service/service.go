// Package service provides the caches service implementation
package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"cgeo/internal/core/cache"
	"cgeo/internal/core/textutil"
	"cgeo/internal/modkit/repokit"
	perr "cgeo/internal/platform/errors"
	"cgeo/internal/platform/logger"
	"cgeo/internal/services/caches/domain"
	"cgeo/internal/services/caches/repo"

	"golang.org/x/text/language"
)

// Config for the caches service
type Config struct {
	// HardLimit caps List results; defaults to 500 if <=0
	HardLimit int
	// Locale is the default collation locale for List
	Locale language.Tag
}

// Service implements domain.StorePort
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[repo.Storage]
	Changes domain.ChangeSink
	Cfg     Config

	now func() time.Time
}

var _ domain.StorePort = (*Service)(nil)

// concurrent upserts of one geocode can fail serialization, those are retried
const upsertAttempts = 3

var retryDelay = 20 * time.Millisecond

var reGeocode = regexp.MustCompile(`^[A-Z0-9]{2,16}$`)

// New constructs a new caches service, changes may be nil
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], changes domain.ChangeSink, cfg Config) *Service {
	if db == nil {
		panic("caches.Service requires a non nil TxRunner")
	}
	if b == nil {
		panic("caches.Service requires a non nil Repo binder")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	if cfg.Locale == language.Und {
		cfg.Locale = textutil.DefaultLocale
	}
	return &Service{DB: db, Binder: b, Changes: changes, Cfg: cfg, now: time.Now}
}

// NormalizeGeocode upper-cases and validates a geocode
func NormalizeGeocode(s string) (string, error) {
	g := strings.ToUpper(strings.TrimSpace(s))
	if !reGeocode.MatchString(g) {
		return "", perr.WithField(perr.InvalidArgf("invalid geocode %q", s), "geocode")
	}
	return g, nil
}

// Upsert stores c and reports whether its description text changed
// the checksum covers the description with control characters turned into
// spaces and the ends trimmed, any other edit, spacing included, is a change
func (s *Service) Upsert(ctx context.Context, c cache.Geocache) (domain.UpsertResult, error) {
	g, err := NormalizeGeocode(c.Geocode)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	c.Geocode = g
	c.DescriptionChecksum = textutil.Checksum(textutil.RemoveControlCharacters(c.Description))

	at := s.now().UTC()
	var res domain.UpsertResult
	for attempt := 1; ; attempt++ {
		err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
			st := s.Binder.Bind(q)
			prev, found, err := st.DescriptionChecksum(ctx, g)
			if err != nil {
				return err
			}
			res = domain.UpsertResult{
				Created:  !found,
				Changed:  !found || prev != c.DescriptionChecksum,
				Checksum: c.DescriptionChecksum,
			}
			return st.Upsert(ctx, c, at)
		})
		if err == nil || attempt == upsertAttempts || !perr.IsRetryable(err) {
			break
		}
		logger.C(ctx).Debug().Err(err).Str("geocode", g).Int("attempt", attempt).Msg("retrying cache upsert")
		select {
		case <-ctx.Done():
			return domain.UpsertResult{}, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.FromPostgres(err, "upsert cache "+g)
		}
		return domain.UpsertResult{}, perr.WithOp(err, "caches.Upsert")
	}

	if res.Changed && s.Changes != nil {
		ev := domain.TextChange{Geocode: g, Field: domain.FieldDescription, Checksum: res.Checksum, At: at}
		if err := s.Changes.RecordTextChanges(ctx, []domain.TextChange{ev}); err != nil {
			// the row is committed, a lost change event only affects history
			logger.C(ctx).Warn().Err(err).Str("geocode", g).Msg("text change not recorded")
		}
	}
	return res, nil
}

// Get loads one cache by geocode
func (s *Service) Get(ctx context.Context, geocode string) (cache.Geocache, error) {
	g, err := NormalizeGeocode(geocode)
	if err != nil {
		return cache.Geocache{}, err
	}
	return s.Binder.Bind(s.DB).Get(ctx, g)
}

// List selects caches by owner, keeps those accepted by the state filter
// and orders them by name with the collator of the requested locale
func (s *Service) List(ctx context.Context, in domain.ListInput) ([]cache.Geocache, error) {
	f, err := cache.ByState(in.State)
	if err != nil {
		return nil, err
	}
	tag := s.Cfg.Locale
	if in.Locale != "" {
		if tag, err = language.Parse(in.Locale); err != nil {
			return nil, perr.WithField(perr.InvalidArgf("invalid locale %q", in.Locale), "locale")
		}
	}
	limit := in.Limit
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}

	// the filter and the collation run in Go, so every page of the owner is read
	// and only the first limit by name are kept between pages
	st := s.Binder.Bind(s.DB)
	owner := strings.TrimSpace(in.Owner)
	var out []cache.Geocache
	for after := ""; ; {
		page, err := st.ListByOwner(ctx, owner, after, s.Cfg.HardLimit)
		if err != nil {
			return nil, err
		}
		if len(page) > 0 {
			after = page[len(page)-1].Geocode
		}
		out = append(out, cache.Apply(page, f)...)
		cache.SortByName(out, tag)
		if len(out) > limit {
			out = out[:limit]
		}
		if len(page) < s.Cfg.HardLimit {
			return out, nil
		}
	}
}

// historyLimit applies when History is asked for 0 or fewer events
const historyLimit = 20

// History lists the recorded text changes of one cache, newest first
func (s *Service) History(ctx context.Context, geocode string, limit int) ([]domain.TextChange, error) {
	g, err := NormalizeGeocode(geocode)
	if err != nil {
		return nil, err
	}
	if s.Changes == nil {
		return nil, perr.Unavailablef("change history disabled")
	}
	if limit <= 0 {
		limit = historyLimit
	}
	limit = min(limit, s.Cfg.HardLimit)
	xs, err := s.Changes.TextChanges(ctx, g, limit)
	return xs, perr.WithOp(err, "caches.History")
}
