// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about estimation, packing, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces per event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This avoids import cycles (hooks are registered by main, not by
// libraries), keeps the core free of observability frameworks, and allows
// different backends (OpenTelemetry, Prometheus, etc.).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPackHooks(&myPackHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pack().OnPackStart(ctx, strategy, len(sections))
//	// ... pack ...
//	observability.Pack().OnPackComplete(ctx, strategy, len(sections), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pack Hooks
// =============================================================================

// PackHooks receives events from the layout pipeline.
type PackHooks interface {
	// Estimate events
	OnEstimateStart(ctx context.Context, sectionCount int)
	OnEstimateComplete(ctx context.Context, sectionCount int, duration time.Duration)

	// Pack events
	OnPackStart(ctx context.Context, strategy string, sectionCount int)
	OnPackComplete(ctx context.Context, strategy string, sectionCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPackHooks is a no-op implementation of PackHooks.
type NoopPackHooks struct{}

func (NoopPackHooks) OnEstimateStart(context.Context, int)                           {}
func (NoopPackHooks) OnEstimateComplete(context.Context, int, time.Duration)         {}
func (NoopPackHooks) OnPackStart(context.Context, string, int)                       {}
func (NoopPackHooks) OnPackComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	packHooks  PackHooks  = NoopPackHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetPackHooks registers custom pack hooks.
// Call once at application startup before any pack operations.
func SetPackHooks(h PackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		packHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pack returns the registered pack hooks.
func Pack() PackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return packHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// Primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	packHooks = NoopPackHooks{}
	cacheHooks = NoopCacheHooks{}
}
