package persist

import (
	"context"

	"github.com/matzehuels/gridboard/pkg/cache"
	"github.com/matzehuels/gridboard/pkg/layout"
)

// LocalCache stores one owner's layouts in a cache.Cache, one entry per
// breakpoint. Entries never expire.
type LocalCache struct {
	Cache cache.Cache
	Keyer cache.Keyer
	Owner string
}

// NewLocalCache creates a local store for owner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (local persistence disabled).
func NewLocalCache(c cache.Cache, keyer cache.Keyer, owner string) *LocalCache {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &LocalCache{Cache: c, Keyer: keyer, Owner: owner}
}

// Load returns the cached layout. A missing entry is an empty layout; a
// corrupt one is an error.
func (s *LocalCache) Load(ctx context.Context, bp layout.Breakpoint) (layout.Layout, error) {
	data, ok, err := s.Cache.Get(ctx, s.key(bp))
	if err != nil || !ok {
		return nil, err
	}
	return layout.Unmarshal(data)
}

// Save replaces the cached layout.
func (s *LocalCache) Save(ctx context.Context, bp layout.Breakpoint, l layout.Layout) error {
	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	return s.Cache.Set(ctx, s.key(bp), data, cache.TTLForever)
}

// Delete drops the cached layout.
func (s *LocalCache) Delete(ctx context.Context, bp layout.Breakpoint) error {
	return s.Cache.Delete(ctx, s.key(bp))
}

func (s *LocalCache) key(bp layout.Breakpoint) string {
	return s.Keyer.LayoutKey(s.Owner, bp.String())
}

var _ Local = (*LocalCache)(nil)
