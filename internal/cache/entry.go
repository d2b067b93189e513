package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached document with TTL metadata.
type Entry struct {
	// Key is the cache key (SHA256 of the source string).
	Key string `json:"key"`

	// Source is the source the document was fetched from, kept for inspection.
	Source string `json:"source"`

	// Data is the cached document.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the entry was written.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry that expires ttl after now.
func NewEntry(key, source string, data json.RawMessage, ttl time.Duration) *Entry {
	now := time.Now().UTC()
	return &Entry{
		Key:       key,
		Source:    source,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the entry is past its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
