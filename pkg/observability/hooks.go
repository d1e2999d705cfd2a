// Package observability provides hooks for metrics, tracing, and logging.
//
// Nothing here depends on a metrics or tracing backend. There are two kinds
// of hooks:
//
//   - Global hooks ([PipelineHooks], [CacheHooks], [ServerHooks]) registered
//     once at startup and called by library code.
//   - A [FitObserver] injected into a fit engine. It receives one structured
//     record per slide per pass, which replaces ad-hoc debug dumps.
//
// # Usage
//
//	observability.SetServerHooks(promHooks{})
//	...
//	observability.Pipeline().OnFitStart(ctx, "screen", len(slides))
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the fit pipeline.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, slides int, duration time.Duration, err error)

	// One start/complete pair per pass mode.
	OnFitStart(ctx context.Context, mode string, slides int)
	OnFitComplete(ctx context.Context, mode string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
// keyType is "snapshot" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP API.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnFitStart(context.Context, string, int)                            {}
func (NoopPipelineHooks) OnFitComplete(context.Context, string, time.Duration, error)        {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks ignores every event.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one registered hook set and falls back to its no-op value.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// store ignores a nil h.
func (s *slot[T]) store(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	serverSlot   = newSlot[ServerHooks](NoopServerHooks{})
)

// SetPipelineHooks registers pipeline hooks. Call it at startup.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.store(h) }

// SetCacheHooks registers cache hooks. Call it at startup.
func SetCacheHooks(h CacheHooks) { cacheSlot.store(h) }

// SetServerHooks registers HTTP hooks. Call it at startup.
func SetServerHooks(h ServerHooks) { serverSlot.store(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// Server returns the registered server hooks.
func Server() ServerHooks { return serverSlot.load() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	serverSlot.reset()
}
