package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/buildinfo"
	"github.com/matzehuels/spritetower/pkg/cache"
	"github.com/matzehuels/spritetower/pkg/observability"
	"github.com/matzehuels/spritetower/pkg/pack"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// results. Multiple goroutines can safely use the same Runner, as long as
// the cache backend is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRun is the cache payload of one run.
type cachedRun struct {
	Artifacts   Artifacts          `json:"artifacts"`
	Diagnostics []atlas.Diagnostic `json:"diagnostics"`
	Stats       Stats              `json:"stats"`
}

// Execute runs load, pack and render for one configuration.
func (r *Runner) Execute(ctx context.Context, cfg Configuration, files []atlas.SourceFile, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.New()}
	logger := opts.Logger.With("run", result.RunID.String()[:8], "config", cfg.Name)

	key, err := r.cacheKey(cfg, files, opts)
	if err != nil {
		return nil, err
	}
	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key, logger); ok {
			result.Artifacts = cached.Artifacts
			result.Diagnostics = cached.Diagnostics
			result.Stats = cached.Stats
			result.CacheHit = true
			logger.Debug("artifacts from cache", "icons", cached.Stats.Icons, "asset", cached.Artifacts.AssetName)
			return result, nil
		}
	}

	hooks := observability.Generate()
	result.Stats.Files = len(files)

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, cfg.Name, len(files))
	docs, diags, err := atlas.Load(ctx, files, opts.atlasOptions()...)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, cfg.Name, len(docs), len(diags), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Diagnostics = diags
	for _, d := range diags {
		logger.Warn("skipped source file", "file", d.File, "code", d.Code, "reason", d.Message)
	}

	// Stage 2: Pack
	packStart := time.Now()
	hooks.OnPackStart(ctx, opts.Packer, len(docs))
	a, err := atlas.Pack(docs, opts.atlasOptions()...)
	result.Stats.PackTime = time.Since(packStart)
	if err != nil {
		hooks.OnPackComplete(ctx, opts.Packer, 0, 0, result.Stats.PackTime, err)
		return nil, fmt.Errorf("pack: %w", err)
	}
	hooks.OnPackComplete(ctx, opts.Packer, a.Width, a.Height, result.Stats.PackTime, nil)
	result.Atlas = a
	fillStats(&result.Stats, a)

	logger.Info("packed atlas",
		"icons", a.Len(),
		"width", a.Width,
		"height", a.Height,
		"packer", a.Packer,
		"duration", result.Stats.LoadTime+result.Stats.PackTime)

	// Stage 3: Render
	renderStart := time.Now()
	art, err := Render(ctx, a, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = art
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered artifacts",
		"asset", art.AssetName,
		"css_bytes", len(art.CSS),
		"duration", result.Stats.RenderTime)

	r.store(ctx, key, opts, cachedRun{Artifacts: art, Diagnostics: diags, Stats: result.Stats}, logger)
	return result, nil
}

func fillStats(s *Stats, a *atlas.Atlas) {
	s.Icons = a.Len()
	s.Skipped = s.Files - a.Len()
	s.Width, s.Height = a.Width, a.Height
	s.Packer = a.Packer

	boxes := make([]pack.Box, a.Len())
	for i, ic := range a.Icons {
		boxes[i] = pack.Box{W: ic.Width(), H: ic.Height()}
	}
	s.Fill = pack.Result{Width: a.Width, Height: a.Height}.Fill(boxes)
}

// cacheKey derives the key for cfg over files. Everything that changes the
// rendered bytes has to be part of it.
func (r *Runner) cacheKey(cfg Configuration, files []atlas.SourceFile, opts Options) (string, error) {
	settings, err := json.Marshal(struct {
		Config  Configuration `json:"config"`
		Options Options       `json:"options"`
	}{cfg, opts})
	if err != nil {
		return "", fmt.Errorf("serialize settings for cache key: %w", err)
	}
	return r.Keyer.ArtifactKey(SourceHash(files), cache.ArtifactKeyOpts{
		Config:   cfg.Name,
		Settings: cache.Hash(settings),
		Version:  buildinfo.Version,
	}), nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (cachedRun, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return cachedRun{}, false
	}
	if !hit {
		return cachedRun{}, false
	}
	var cached cachedRun
	if err := json.Unmarshal(data, &cached); err != nil {
		// Entries from an incompatible build; regenerate.
		return cachedRun{}, false
	}
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, opts Options, run cachedRun, logger *log.Logger) {
	data, err := json.Marshal(run)
	if err != nil {
		logger.Warn("cache encode failed", "error", err)
		return
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
