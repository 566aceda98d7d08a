// Package cache provides byte caches for resolved assets and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per key under a directory; the CLI default
//   - [MemoryCache]: in-process TTL cache backed by patrickmn/go-cache
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: never stores anything (--no-cache)
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the observability cache hooks.
//
// # Keys
//
// A [Keyer] derives keys from the inputs that determine a cached value.
// Asset keys hash the reference and normalization size; artifact keys
// hash the document and the render options, so changing the scale or
// backend never serves a stale image. [ScopedKeyer] adds a namespace
// prefix for multi-tenant deployments.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a byte store with per-entry expiry. A ttl of zero means the
// entry never expires. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes.
const (
	TTLAsset    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeAsset    = "asset"
	KeyTypeArtifact = "artifact"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("not found")

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// Keyer derives cache keys.
type Keyer interface {
	AssetKey(ref string, opts AssetKeyOpts) string
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// AssetKeyOpts holds the inputs that change a resolved asset.
type AssetKeyOpts struct {
	// Size is the square pixel size logos are normalized to; 0 keeps the original.
	Size int `json:"size,omitempty"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Backend string  `json:"backend,omitempty"`
}

// DefaultKeyer builds keys of the form "type:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AssetKey hashes the reference with its normalization options.
func (DefaultKeyer) AssetKey(ref string, opts AssetKeyOpts) string {
	return hashKey(KeyTypeAsset, ref, opts)
}

// ArtifactKey hashes a document hash with its render options.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, docHash, opts)
}

var (
	_ Cache = NullCache{}
	_ Keyer = DefaultKeyer{}
)
