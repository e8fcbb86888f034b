// Package cache stores rendered artifact sets between generation runs.
//
// Generation is cheap enough to repeat but not free: a watch loop or a dev
// server regenerates on every change, usually for unchanged inputs. The
// pipeline keys each artifact set by a digest of the configuration and the
// ordered source files and stores it through a [Cache].
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory (default for the CLI)
//   - [BoltCache]: a single bbolt database file
//   - [RedisCache]: a shared Redis instance
//   - [MongoCache]: a MongoDB collection
//   - [NullCache]: caching disabled
//
// [Open] selects a backend from [Options]; [Instrumented] reports hits and
// misses to the observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A miss is reported as
// (nil, false, nil); an error means the backend itself failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// DefaultTTL is the lifetime of cached artifacts when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// cacheEntry wraps cached data with metadata.
type cacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newEntry(data []byte, ttl time.Duration) cacheEntry {
	e := cacheEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	return e
}

func (e cacheEntry) expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}
