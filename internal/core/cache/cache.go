// Package cache holds the geocache model and the list filters applied to it
package cache

import (
	"sort"
	"time"

	"cgeo/internal/core/textutil"

	"golang.org/x/text/language"
)

// Geocache is the slice of a cache listing the backend works with
type Geocache struct {
	Geocode             string
	Name                string
	Owner               string
	Type                string
	Disabled            bool
	Archived            bool
	Found               bool
	Description         string
	DescriptionChecksum uint32
	Hidden              time.Time
	Coords              string
}

// SortByName orders caches by name using a case and accent insensitive collator for tag
// ties are broken by geocode so the order is stable across calls
func SortByName(caches []Geocache, tag language.Tag) {
	col := textutil.NewCollator(tag)
	sort.SliceStable(caches, func(i, j int) bool {
		if c := col.CompareString(caches[i].Name, caches[j].Name); c != 0 {
			return c < 0
		}
		return caches[i].Geocode < caches[j].Geocode
	})
}
