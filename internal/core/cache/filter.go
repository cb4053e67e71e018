package cache

import (
	"sort"

	perr "cgeo/internal/platform/errors"
)

// Filter decides whether a cache stays in a list
type Filter interface {
	Name() string
	Accepts(c *Geocache) bool
}

// stateFilter is a Filter backed by a predicate on the cache state flags
type stateFilter struct {
	name    string
	accepts func(c *Geocache) bool
}

func (f stateFilter) Name() string             { return f.name }
func (f stateFilter) Accepts(c *Geocache) bool { return c != nil && f.accepts(c) }

// State filter keys as used by the API
const (
	StateKeyEnabled  = "enabled"
	StateKeyDisabled = "disabled"
	StateKeyArchived = "archived"
	StateKeyFound    = "found"
	StateKeyNotFound = "not_found"
)

var (
	// StateEnabled accepts caches that are neither disabled nor archived
	StateEnabled Filter = stateFilter{StateKeyEnabled, func(c *Geocache) bool { return !c.Disabled && !c.Archived }}

	// StateDisabled accepts temporarily disabled caches
	StateDisabled Filter = stateFilter{StateKeyDisabled, func(c *Geocache) bool { return c.Disabled }}

	// StateArchived accepts archived caches
	StateArchived Filter = stateFilter{StateKeyArchived, func(c *Geocache) bool { return c.Archived }}

	// StateFound accepts caches the user has logged as found
	StateFound Filter = stateFilter{StateKeyFound, func(c *Geocache) bool { return c.Found }}

	// StateNotFound accepts caches the user has not found yet
	StateNotFound Filter = stateFilter{StateKeyNotFound, func(c *Geocache) bool { return !c.Found }}
)

var stateFilters = map[string]Filter{
	StateKeyEnabled:  StateEnabled,
	StateKeyDisabled: StateDisabled,
	StateKeyArchived: StateArchived,
	StateKeyFound:    StateFound,
	StateKeyNotFound: StateNotFound,
}

// ByState resolves a state filter by key, an empty key means no filter
func ByState(key string) (Filter, error) {
	if key == "" {
		return nil, nil
	}
	f, ok := stateFilters[key]
	if !ok {
		return nil, perr.WithField(perr.InvalidArgf("unknown state filter %q", key), "state")
	}
	return f, nil
}

// StateKeys lists the known state filter keys in sorted order
func StateKeys() []string {
	out := make([]string, 0, len(stateFilters))
	for k := range stateFilters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Apply returns the caches f accepts in their original order, a nil f accepts everything
func Apply(caches []Geocache, f Filter) []Geocache {
	if f == nil {
		return caches
	}
	out := make([]Geocache, 0, len(caches))
	for i := range caches {
		if f.Accepts(&caches[i]) {
			out = append(out, caches[i])
		}
	}
	return out
}
