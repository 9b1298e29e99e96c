// Package cache provides local persistent key/value storage.
//
// A [Cache] stores opaque byte values under string keys with an optional
// TTL. [FileCache] keeps one file per key under a directory (the CLI uses
// ~/.cache/gridboard) and enforces a per-entry size quota. [NullCache]
// stores nothing and is used when local persistence is disabled.
//
// Keys are built by a [Keyer] so every caller agrees on the namespace:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey("alice", "lg") // "layout:alice:lg"
package cache

import (
	"context"
	"strings"
	"time"
)

// TTLForever is the zero TTL: the entry never expires.
const TTLForever time.Duration = 0

// Cache is a key/value store for byte values.
type Cache interface {
	// Get returns the value for key. A missing, expired or corrupt entry is
	// a miss (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey is the key of one owner's layout at one breakpoint.
	LayoutKey(owner, breakpoint string) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<owner>:<breakpoint>".
func (DefaultKeyer) LayoutKey(owner, breakpoint string) string {
	return "layout:" + owner + ":" + breakpoint
}

// KeyType returns the namespace of key (the text before the first colon,
// ignoring any scope prefix ending in "/"), as reported to cache hooks.
func KeyType(key string) string {
	key = key[strings.LastIndexByte(key, '/')+1:]
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}
