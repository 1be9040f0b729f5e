// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation stays optional: the pipeline emits events through the
// hook interfaces below and, unless something else is registered at
// startup, they go to no-op implementations.
//
// # Usage
//
// Register hooks once at startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, id)
//	// ... compute the plot ...
//	observability.Pipeline().OnBuildComplete(ctx, id, triangles, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the render pipeline. id is the batch
// identifier, or the output path for single renders.
type PipelineHooks interface {
	// Geometry events
	OnBuildStart(ctx context.Context, id string)
	OnBuildComplete(ctx context.Context, id string, triangles int, duration time.Duration, err error)

	// Encoding events
	OnEncodeStart(ctx context.Context, id, format string)
	OnEncodeComplete(ctx context.Context, id, format string, size int, duration time.Duration, err error)

	// OnGroupComplete fires once per batch group, after its file is written
	// or the render failed.
	OnGroupComplete(ctx context.Context, id string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnEncodeStart(context.Context, string, string)                        {}
func (NoopPipelineHooks) OnGroupComplete(context.Context, string, error)                       {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, string, string, int, time.Duration, error) {
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
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
