package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants, or
// several deployments sharing one Redis, keep separate namespaces.
//
// Example usage:
//
//	// API server keys
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//
//	// CLI keys
//	cliKeyer := NewDefaultKeyer()
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

// SolutionKey generates a prefixed key for solver results.
func (k *ScopedKeyer) SolutionKey(pointsHash string, opts SolutionKeyOpts) string {
	return k.prefix + k.inner.SolutionKey(pointsHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solutionHash, opts)
}
