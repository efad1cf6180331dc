// Package cache stores built artifacts (meshes, previews, assembly sheets)
// so repeated builds of the same spec skip the geometry kernel.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared redis instance, for build farms
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// A [Keyer] derives keys from the spec hash and the export options. Wrap it
// in a [ScopedKeyer] to isolate namespaces; the pipeline scopes by geometry
// revision so a kernel change never serves stale meshes.
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts. Geometry is deterministic, so these only bound
// disk usage.
const (
	MeshTTL    = 30 * 24 * time.Hour
	PreviewTTL = 30 * 24 * time.Hour
	LayoutTTL  = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Stats summarises a cache's contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// StatsReporter is implemented by caches that can report their size.
type StatsReporter interface {
	Stats(ctx context.Context) (Stats, error)
}
