// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the registered hooks; the defaults are
// no-ops so nothing is required at startup. Register implementations once in
// main (or in a test) before any export runs:
//
//	observability.SetCompositeHooks(observability.NewLogHooks(logger))
//
// Emitting an event:
//
//	observability.Composite().OnCompositeStart(ctx, rec.ID)
//	// ... composite ...
//	observability.Composite().OnCompositeComplete(ctx, rec.ID, len(png), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Composite Hooks
// =============================================================================

// CompositeHooks receives events from the image compositor.
type CompositeHooks interface {
	OnCompositeStart(ctx context.Context, recordID string)
	OnCompositeComplete(ctx context.Context, recordID string, bytes int, duration time.Duration, err error)

	// OnLogoSkipped records a soft failure: the logo could not be loaded and
	// the image was produced without it.
	OnLogoSkipped(ctx context.Context, recordID, logoRef string, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompositeHooks is a no-op implementation of CompositeHooks.
type NoopCompositeHooks struct{}

func (NoopCompositeHooks) OnCompositeStart(context.Context, string) {}
func (NoopCompositeHooks) OnCompositeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCompositeHooks) OnLogoSkipped(context.Context, string, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	compositeHooks CompositeHooks = NoopCompositeHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetCompositeHooks registers compositor hooks. Nil is ignored.
func SetCompositeHooks(h CompositeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compositeHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Composite returns the registered compositor hooks.
func Composite() CompositeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compositeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	compositeHooks = NoopCompositeHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
