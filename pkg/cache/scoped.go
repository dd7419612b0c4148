package cache

// ScopedKeyer wraps a Keyer with a prefix so different portfolios (or
// users, in a multi-tenant deployment) get isolated cache namespaces.
//
//	// Per-portfolio keys
//	keyer := cache.NewScopedKeyer(nil, "portfolio:main:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer defaults to the standard key layout.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// HoldingsKey generates a prefixed key for holdings snapshot caching.
func (k *ScopedKeyer) HoldingsKey(scope string) string {
	return k.prefix + k.inner.HoldingsKey(scope)
}
