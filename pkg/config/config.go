// Package config loads the project file that drives the CLI.
//
// A project file is TOML, named spritetower.toml by default:
//
//	output_dir     = "dist/sprites"
//	dts_output_dir = "src/types"
//	public_path    = "/static/"
//
//	[cache]
//	backend = "bolt"
//
//	[configurations.client]
//	folder           = "icons/client"
//	css_class_prefix = "client-"
//
//	[configurations.client.dts]
//	module    = true
//	enum_name = "ClientIcon"
//
//	[[configurations.client.css]]
//	selector = ".icon"
//	scale    = 1
//	unit     = "px"
//
// Relative paths are resolved against the directory of the file. Settings
// shared by all configurations can be overridden from the environment with
// SPRITETOWER_-prefixed variables, see [ApplyEnv].
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/spritetower/pkg/cache"
	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/pipeline"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFileName is the project file looked up when none is given.
	DefaultFileName = "spritetower.toml"

	// DefaultOutputDir receives the composite, stylesheet and runtime files.
	DefaultOutputDir = "dist"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SPRITETOWER_"
)

// =============================================================================
// File Shape
// =============================================================================

// Config is a decoded project file.
type Config struct {
	ModulePrefix string `toml:"module_prefix" env:"MODULE_PREFIX"`
	OutputDir    string `toml:"output_dir" env:"OUTPUT_DIR"`
	DTSOutputDir string `toml:"dts_output_dir" env:"DTS_DIR"`
	PublicPath   string `toml:"public_path" env:"PUBLIC_PATH"`
	Packer       string `toml:"packer" env:"PACKER"`
	Duplicates   string `toml:"duplicates" env:"DUPLICATES"`

	Cache Cache `toml:"cache" envPrefix:"CACHE_"`

	Configurations map[string]Configuration `toml:"configurations"`

	// Dir is the directory relative paths were resolved against.
	Dir string `toml:"-"`

	ttl time.Duration
}

// Cache selects the artifact cache backend.
type Cache struct {
	Backend    string `toml:"backend" env:"BACKEND"`
	Dir        string `toml:"dir" env:"DIR"`
	TTL        string `toml:"ttl" env:"TTL"`
	Namespace  string `toml:"namespace" env:"NAMESPACE"`
	RedisAddr  string `toml:"redis_addr" env:"REDIS_ADDR"`
	MongoURI   string `toml:"mongo_uri" env:"MONGO_URI"`
	Database   string `toml:"mongo_database" env:"MONGO_DATABASE"`
	Collection string `toml:"mongo_collection" env:"MONGO_COLLECTION"`
}

// Configuration is one [configurations.<name>] table.
type Configuration struct {
	Folder      string                      `toml:"folder"`
	ClassPrefix string                      `toml:"css_class_prefix"`
	DTS         pipeline.DeclarationOptions `toml:"dts"`
	CSS         []stylesheet.Rule           `toml:"css"`
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the project file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a project file whose relative paths are anchored at dir.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data []byte, dir string) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	c.Dir = dir

	if err := ApplyEnv(&c); err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyEnv overrides shared settings from SPRITETOWER_* variables, for
// example SPRITETOWER_PUBLIC_PATH or SPRITETOWER_CACHE_BACKEND. Unset
// variables leave the file values alone.
func ApplyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SetDefaults fills empty settings and resolves relative paths.
// This method is idempotent.
func (c *Config) SetDefaults() {
	if c.ModulePrefix == "" {
		c.ModulePrefix = pipeline.DefaultModulePrefix
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.DTSOutputDir == "" {
		c.DTSOutputDir = c.OutputDir
	}
	if c.Packer == "" {
		c.Packer = pipeline.DefaultPacker
	}
	c.OutputDir = c.resolve(c.OutputDir)
	c.DTSOutputDir = c.resolve(c.DTSOutputDir)
	if c.Cache.Dir != "" {
		c.Cache.Dir = c.resolve(c.Cache.Dir)
	}

	for name, cfg := range c.Configurations {
		cfg.Folder = c.resolve(cfg.Folder)
		for i := range cfg.CSS {
			if cfg.CSS[i].Scale == 0 {
				cfg.CSS[i].Scale = 1
			}
			if cfg.CSS[i].Unit == "" {
				cfg.CSS[i].Unit = stylesheet.UnitPx
			}
		}
		c.Configurations[name] = cfg
	}
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Validate checks every configuration and the shared options.
func (c *Config) Validate() error {
	if len(c.Configurations) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no configurations defined")
	}
	for _, cfg := range c.PipelineConfigurations() {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	c.ttl = 0
	if c.Cache.TTL != "" {
		ttl, err := time.ParseDuration(c.Cache.TTL)
		if err != nil || ttl < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid cache ttl %q", c.Cache.TTL)
		}
		c.ttl = ttl
	}
	return nil
}

// =============================================================================
// Mapping
// =============================================================================

// Names returns the configuration names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Configurations))
	for name := range c.Configurations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PipelineConfigurations returns every configuration, sorted by name.
func (c *Config) PipelineConfigurations() []pipeline.Configuration {
	out := make([]pipeline.Configuration, 0, len(c.Configurations))
	for _, name := range c.Names() {
		cfg, _ := c.PipelineConfiguration(name)
		out = append(out, cfg)
	}
	return out
}

// PipelineConfiguration returns the named configuration.
func (c *Config) PipelineConfiguration(name string) (pipeline.Configuration, error) {
	cfg, ok := c.Configurations[name]
	if !ok {
		return pipeline.Configuration{}, errors.New(errors.ErrCodeConfigurationUnset,
			"configuration %q not found (available: %s)", name, strings.Join(c.Names(), ", "))
	}
	return pipeline.Configuration{
		Name:        name,
		Folder:      cfg.Folder,
		ClassPrefix: cfg.ClassPrefix,
		Declaration: cfg.DTS,
		Stylesheets: cfg.CSS,
	}, nil
}

// PipelineOptions returns the options shared by every configuration.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		PublicPath:   c.PublicPath,
		ModulePrefix: c.ModulePrefix,
		Packer:       c.Packer,
		Duplicates:   c.Duplicates,
		TTL:          c.ttl,
	}
}

// CacheOptions returns the cache backend settings.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:         c.Cache.Backend,
		Dir:             c.Cache.Dir,
		RedisAddr:       c.Cache.RedisAddr,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.Database,
		MongoCollection: c.Cache.Collection,
		Namespace:       c.Cache.Namespace,
		TTL:             c.ttl,
	}
}
