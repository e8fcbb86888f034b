package cache

import (
	"context"
	"time"

	"github.com/matzehuels/spritetower/pkg/observability"
)

// instrumented reports cache traffic to the registered cache hooks.
type instrumented struct {
	Cache
	backend string
}

// Instrumented wraps c so that hits, misses and writes are reported to
// observability.Cache() under the given backend name.
func Instrumented(c Cache, backend string) Cache {
	return &instrumented{Cache: c, backend: backend}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.backend)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.backend)
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.backend, len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
