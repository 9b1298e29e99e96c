package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrQuotaExceeded is returned by Set when an entry is larger than the
	// cache's per-entry quota. Nothing is written.
	ErrQuotaExceeded = errors.New("cache quota exceeded")

	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("cache closed")
)
