// Package domain defines the types and ports of the caches service
package domain

import "time"

// FieldDescription is the text field tracked for changes
const FieldDescription = "description"

// ListInput selects caches for a list view
type ListInput struct {
	// Owner restricts to caches hidden by this owner, empty means all
	Owner string
	// State is a cache.ByState key, empty means all
	State string
	// Locale orders names, zero means textutil.DefaultLocale
	Locale string
	Limit  int
}

// UpsertResult reports whether the stored description text changed
type UpsertResult struct {
	Changed  bool
	Created  bool
	Checksum uint32
}

// TextChange is one change event of a tracked text field
type TextChange struct {
	Geocode  string
	Field    string
	Checksum uint32
	At       time.Time
}
