package cache

// ScopedKeyer wraps a Keyer with a prefix so several documents (or servers)
// can share one cache backend without their keys colliding.
//
// Example usage:
//
//	// Keys for the document served under id "settings"
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "doc:settings:")
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

// GraphKey generates a prefixed key for graph caching.
func (k *ScopedKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(docHash, opts)
}

// RenderKey generates a prefixed key for render caching.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
