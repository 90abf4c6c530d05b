// Package cache provides byte-level caching for pack pipeline stages.
//
// The [Cache] interface abstracts over backends:
//   - [MemoryCache]: bounded in-process cache with LRU eviction
//   - [FileCache]: file-based cache for CLI usage (XDG cache dir)
//   - [RedisCache]: Redis-backed cache for multi-instance serving
//   - [NullCache]: no-op cache for disabling caching
//
// Keys are built by a [Keyer] that hashes the inputs of each stage, so a
// change to the sections, the grid geometry, or the strategy produces a new
// key rather than a stale hit.
package cache

import (
	"context"
	"errors"
	"time"
)

// TTLs per cached artifact class. Estimated sections are cheap to recompute
// but keyed identically across runs; layouts are the expensive product.
const (
	// TTLSections is the lifetime of cached estimated-section batches.
	TTLSections = 24 * time.Hour

	// TTLLayout is the lifetime of cached layout results.
	TTLLayout = 24 * time.Hour
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache stores opaque byte payloads under string keys.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a clean
// miss; errors are reserved for backend failures. A zero ttl on Set means
// no expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
