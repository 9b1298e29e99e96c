package cache

// ScopedKeyer wraps a Keyer with a prefix for isolation between
// deployments that share one cache directory, e.g. one per remote server:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "localhost:8080/")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(owner, breakpoint string) string {
	return k.prefix + k.inner.LayoutKey(owner, breakpoint)
}
