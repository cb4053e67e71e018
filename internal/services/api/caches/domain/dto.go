// Package domain holds DTOs for the caches http and service contracts
package domain

import "time"

// Cache is the wire form of a stored geocache
type Cache struct {
	Geocode     string     `json:"geocode"               validate:"required,geocode" example:"GC12AB"`
	Name        string     `json:"name"                  validate:"required,max=512" example:"Old Mill"`
	Owner       string     `json:"owner,omitempty"       validate:"max=256"          example:"anna"`
	Type        string     `json:"type,omitempty"        validate:"max=64"           example:"traditional"`
	Disabled    bool       `json:"disabled"`
	Archived    bool       `json:"archived"`
	Found       bool       `json:"found"`
	Description string     `json:"description,omitempty" validate:"max=1048576"      example:"<p>Behind the wheel</p>"`
	Hidden      *time.Time `json:"hidden,omitempty"`
	Coords      string     `json:"coords,omitempty"      validate:"max=64"           example:"N 52° 31.000' E 013° 24.000'"`
}

// CacheView is a stored cache with its derived text fields
type CacheView struct {
	Cache
	DescriptionText     string `json:"description_text,omitempty" example:"Behind the wheel"`
	DescriptionChecksum uint32 `json:"description_checksum"       example:"3421780262"`
}

// ListInput selects caches for a list view
type ListInput struct {
	Owner  string `json:"owner,omitempty"  validate:"max=256"                                                  example:"anna"`
	State  string `json:"state,omitempty"  validate:"omitempty,oneof=enabled disabled archived found not_found" example:"enabled"`
	Locale string `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"                             example:"de"`
	Limit  int    `json:"limit,omitempty"  validate:"min=0,max=1000"                                           example:"50"`
}

// ListOutput is an ordered page of caches
type ListOutput struct {
	Caches []CacheView `json:"caches"`
}

// UpsertInput stores one cache
type UpsertInput struct {
	Cache Cache `json:"cache"`
}

// UpsertOutput reports the effect of an upsert
type UpsertOutput struct {
	Geocode  string `json:"geocode"  example:"GC12AB"`
	Created  bool   `json:"created"  example:"true"`
	Changed  bool   `json:"changed"  example:"true"`
	Checksum uint32 `json:"checksum" example:"3421780262"`
}

// Change is one recorded change of a tracked text field
type Change struct {
	Field    string    `json:"field"    example:"description"`
	Checksum uint32    `json:"checksum" example:"3421780262"`
	At       time.Time `json:"at"       example:"2026-10-17T09:00:00Z"`
}

// HistoryOutput is the change log of one cache, newest first
type HistoryOutput struct {
	Geocode string   `json:"geocode" example:"GC12AB"`
	Changes []Change `json:"changes"`
}
