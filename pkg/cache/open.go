package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendBolt  = "bolt"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // one of the Backend constants; empty selects file
	Dir     string // file backend directory; bolt uses Dir/cache.db

	RedisAddr string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Namespace scopes keys on shared backends (redis, mongo).
	Namespace string

	TTL time.Duration
}

// DefaultDir returns the per-user cache directory for spritetower.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "spritetower")
	}
	return filepath.Join(os.TempDir(), "spritetower-cache")
}

// Open returns the configured backend, wrapped with Instrumented, together
// with a Keyer that matches its scoping.
func Open(ctx context.Context, opts Options) (Cache, Keyer, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}
	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir()
	}

	keyer := NewDefaultKeyer()
	if opts.Namespace != "" && (backend == BackendRedis || backend == BackendMongo) {
		keyer = NewScopedKeyer(keyer, opts.Namespace)
	}

	var (
		c   Cache
		err error
	)
	switch backend {
	case BackendFile:
		c, err = NewFileCache(dir)
	case BackendBolt:
		if err = os.MkdirAll(dir, 0755); err == nil {
			c, err = NewBoltCache(filepath.Join(dir, "cache.db"))
		}
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, nil, fmt.Errorf("redis cache needs an address")
		}
		c, err = NewRedisCache(ctx, opts.RedisAddr, opts.Namespace)
	case BackendMongo:
		if opts.MongoURI == "" {
			return nil, nil, fmt.Errorf("mongo cache needs a connection uri")
		}
		c, err = NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection, opts.Namespace)
	case BackendNone:
		c = NewNullCache()
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q (must be one of: file, bolt, redis, mongo, none)", opts.Backend)
	}
	if err != nil {
		return nil, nil, err
	}
	return Instrumented(c, backend), keyer, nil
}
