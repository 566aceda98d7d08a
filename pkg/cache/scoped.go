package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP server uses it to keep deployments that share one Redis
// instance from reading each other's artifacts.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "moverboard:prod:")
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

// AssetKey generates a prefixed key for resolved images.
func (k *ScopedKeyer) AssetKey(ref string, opts AssetKeyOpts) string {
	return k.prefix + k.inner.AssetKey(ref, opts)
}

// ArtifactKey generates a prefixed key for rendered pages.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}
