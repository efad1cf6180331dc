// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about keycap builds, mesh exports, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the geometry packages
// stay free of any backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(observability.NewLogBuildHooks(logger))
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnBuildStart(ctx, label)
//	// ... build the keycap ...
//	observability.Build().OnBuildComplete(ctx, label, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the keycap build pipeline.
type BuildHooks interface {
	// Keycap events
	OnBuildStart(ctx context.Context, label string)
	OnBuildComplete(ctx context.Context, label string, duration time.Duration, err error)

	// Export events
	OnExportComplete(ctx context.Context, label, format string, size int, duration time.Duration, err error)

	// Batch events
	OnBatchStart(ctx context.Context, keys int)
	OnBatchComplete(ctx context.Context, keys, failed int, duration time.Duration)
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

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string)                          {}
func (NoopBuildHooks) OnBuildComplete(context.Context, string, time.Duration, error) {}
func (NoopBuildHooks) OnExportComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopBuildHooks) OnBatchStart(context.Context, int)                        {}
func (NoopBuildHooks) OnBatchComplete(context.Context, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Logging Implementations
// =============================================================================

// LogBuildHooks writes build events to a logger at debug level. Failures are
// logged as warnings.
type LogBuildHooks struct {
	logger *log.Logger
}

// NewLogBuildHooks returns build hooks that log to logger.
func NewLogBuildHooks(logger *log.Logger) *LogBuildHooks {
	return &LogBuildHooks{logger: logger}
}

func (h *LogBuildHooks) OnBuildStart(_ context.Context, label string) {
	h.logger.Debug("build started", "key", label)
}

func (h *LogBuildHooks) OnBuildComplete(_ context.Context, label string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("build failed", "key", label, "error", err)
		return
	}
	h.logger.Debug("build done", "key", label, "elapsed", d.Round(time.Millisecond))
}

func (h *LogBuildHooks) OnExportComplete(_ context.Context, label, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "key", label, "format", format, "error", err)
		return
	}
	h.logger.Debug("exported", "key", label, "format", format, "bytes", size, "elapsed", d.Round(time.Millisecond))
}

func (h *LogBuildHooks) OnBatchStart(_ context.Context, keys int) {
	h.logger.Debug("batch started", "keys", keys)
}

func (h *LogBuildHooks) OnBatchComplete(_ context.Context, keys, failed int, d time.Duration) {
	h.logger.Debug("batch done", "keys", keys, "failed", failed, "elapsed", d.Round(time.Millisecond))
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any builds run.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	cacheHooks = NoopCacheHooks{}
}
