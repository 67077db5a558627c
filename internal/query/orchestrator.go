// Package query is the cached-request layer between the view surfaces
// and the API client. Results are cached per request key, identical
// concurrent fetches collapse into a single in-flight call, transient
// failures are retried transparently, and mutations invalidate the
// affected keys so the next read refetches.
package query

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// defaultRetries is how many times a failed fetch is retried before the
// error reaches the caller.
const defaultRetries = 2

// Orchestrator maps request keys to cached results.
type Orchestrator struct {
	mu      sync.Mutex
	cache   map[string]any
	group   singleflight.Group
	retries int
}

// NewOrchestrator returns an empty Orchestrator with the default retry
// count.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		cache:   make(map[string]any),
		retries: defaultRetries,
	}
}

// Cached returns the cached value for key, if any.
func (o *Orchestrator) Cached(key string) (any, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.cache[key]
	return v, ok
}

// Invalidate drops every cache entry whose key starts with prefix. A
// successful create/update calls this with the complaints prefix so the
// next list read refetches.
func (o *Orchestrator) Invalidate(prefix string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k := range o.cache {
		if strings.HasPrefix(k, prefix) {
			delete(o.cache, k)
		}
	}
}

// Clear drops the whole cache. Called on logout so no data fetched
// under the previous identity can be served to the next one.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache = make(map[string]any)
}

func (o *Orchestrator) store(key string, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache[key] = v
}

// Fetch returns the cached value for key, fetching it with fn on a
// cache miss. Concurrent fetches for the same key share one call.
func Fetch[T any](ctx context.Context, o *Orchestrator, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := o.Cached(key); ok {
		return v.(T), nil
	}
	return Refetch(ctx, o, key, fn)
}

// Refetch bypasses the cache and runs fn, still deduplicating against
// any in-flight fetch of the same key (so a manual refresh racing the
// auto-refresh poller results in a single request). Failures are
// retried up to the orchestrator's retry count; the caller only sees
// eventual success or the final error. The cache is updated on success
// and left untouched on failure.
func Refetch[T any](ctx context.Context, o *Orchestrator, key string, fn func(context.Context) (T, error)) (T, error) {
	v, err, _ := o.group.Do(key, func() (any, error) {
		var lastErr error
		for attempt := 0; attempt <= o.retries; attempt++ {
			val, err := fn(ctx)
			if err == nil {
				o.store(key, val)
				return val, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				break
			}
		}
		return nil, lastErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
