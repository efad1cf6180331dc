package cache

// ScopedKeyer prefixes every key of an inner Keyer. The pipeline scopes
// keys by geometry revision, so meshes built by an older kernel are never
// served after the geometry changes:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "g2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) MeshKey(specHash string, opts MeshKeyOpts) string {
	return k.prefix + k.inner.MeshKey(specHash, opts)
}

func (k *ScopedKeyer) PreviewKey(specHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(specHash, opts)
}

func (k *ScopedKeyer) LayoutKey(setHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(setHash, opts)
}
