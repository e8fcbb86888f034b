package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/spritetower/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exerciseCache runs the shared contract against a backend.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should be a miss")
	}

	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should not expire")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of a missing key: %v", err)
	}

	if cl, ok := c.(Clearer); ok {
		if err := cl.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "forever"); hit {
			t.Error("Clear should drop every entry")
		}
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v, want clean miss", hit, err)
	}
}

func TestBoltCache(t *testing.T) {
	c, err := NewBoltCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	exerciseCache(t, c)

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("SPRITETOWER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPRITETOWER_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), addr, "spritetower-test:")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, prefixed(c, "spritetower-test:"))
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("SPRITETOWER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SPRITETOWER_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "spritetower_test", "artifacts", "test:")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, prefixed(c, "test:"))
}

// prefixedCache namespaces keys the way a ScopedKeyer does, so Clear on a
// shared backend sees them.
type prefixedCache struct {
	Cache
	prefix string
}

func prefixed(c Cache, prefix string) *prefixedCache { return &prefixedCache{Cache: c, prefix: prefix} }

func (p *prefixedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.Cache.Get(ctx, p.prefix+key)
}

func (p *prefixedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.Cache.Set(ctx, p.prefix+key, data, ttl)
}

func (p *prefixedCache) Delete(ctx context.Context, key string) error {
	return p.Cache.Delete(ctx, p.prefix+key)
}

func (p *prefixedCache) Clear(ctx context.Context) error {
	return p.Cache.(Clearer).Clear(ctx)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashParts(t *testing.T) {
	a := HashParts([]byte("ab"), []byte("c"))
	b := HashParts([]byte("a"), []byte("bc"))
	if a == b {
		t.Error("part boundaries should affect the hash")
	}
	if a != HashParts([]byte("ab"), []byte("c")) {
		t.Error("HashParts should be deterministic")
	}
	if HashParts() == HashParts(nil) {
		t.Error("an empty part should differ from no parts")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.ArtifactKey("src", ArtifactKeyOpts{Config: "client", Settings: "s1", Version: "v1"})
	for _, other := range []string{
		k.ArtifactKey("src2", ArtifactKeyOpts{Config: "client", Settings: "s1", Version: "v1"}),
		k.ArtifactKey("src", ArtifactKeyOpts{Config: "admin", Settings: "s1", Version: "v1"}),
		k.ArtifactKey("src", ArtifactKeyOpts{Config: "client", Settings: "s2", Version: "v1"}),
		k.ArtifactKey("src", ArtifactKeyOpts{Config: "client", Settings: "s1", Version: "v2"}),
	} {
		if other == base {
			t.Errorf("key %s should differ from %s", other, base)
		}
	}
	if base != k.ArtifactKey("src", ArtifactKeyOpts{Config: "client", Settings: "s1", Version: "v1"}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:web:")

	opts := ArtifactKeyOpts{Config: "client"}
	if got, want := scoped.ArtifactKey("h", opts), "project:web:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ArtifactKey = %s, want %s", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.ArtifactKey("h", opts); got != "p:"+inner.ArtifactKey("h", opts) {
		t.Errorf("nil inner should fall back to DefaultKeyer: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	base := errors.New("connection reset")
	err := Retryable(base)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != base.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if IsRetryable(base) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	ctx := context.Background()
	permanent := errors.New("permanent")

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	calls = 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return permanent }); err != permanent || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(permanent)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry once: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(permanent) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errors.New("timeout"))
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrumented(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Instrumented(inner, BackendFile)
	ctx := context.Background()

	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"), 0)
	c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %+v, want one of each", *hooks)
	}

	if err := c.(Clearer).Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := inner.Get(ctx, "k"); hit {
		t.Error("Clear should reach the wrapped cache")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{"", BackendFile, BackendBolt, BackendNone} {
		c, keyer, err := Open(ctx, Options{Backend: backend, Dir: dir})
		if err != nil {
			t.Fatalf("Open(%q): %v", backend, err)
		}
		if keyer == nil {
			t.Errorf("Open(%q) returned no keyer", backend)
		}
		c.Close()
	}

	if _, err := os.Stat(filepath.Join(dir, "cache.db")); err != nil {
		t.Errorf("bolt backend should create cache.db: %v", err)
	}

	for _, opts := range []Options{
		{Backend: "memcached"},
		{Backend: BackendRedis},
		{Backend: BackendMongo},
	} {
		if _, _, err := Open(ctx, opts); err == nil {
			t.Errorf("Open(%+v) should fail", opts)
		}
	}
}
