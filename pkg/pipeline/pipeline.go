// Package pipeline runs one generation pass for a sprite configuration.
//
// A pass turns the files of an icon folder into the generated artifacts:
//
//  1. Load: parse every file, skip unusable ones, resolve duplicate names
//  2. Pack: place the icons and validate the placements
//  3. Render: composite SVG and declaration, then the stylesheet and runtime
//     module, which need the URL of the published composite
//
// The CLI commands generate, watch and serve all go through [Runner.Execute],
// so caching, logging and hooks behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, keyer, logger)
//	files, err := pipeline.ReadFolder(cfg.Folder)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, cfg, files, pipeline.Options{PublicPath: "/assets/"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(result.Artifacts.AssetName, result.Artifacts.SVG, 0644)
//
// # Caching
//
// The cache key covers the configuration, the options that affect output,
// the generator version and the name and bytes of every source file in
// order. A hit returns the stored artifacts and diagnostics without loading
// or packing; Result.Atlas is nil in that case.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/pack"
	"github.com/matzehuels/spritetower/pkg/render/declaration"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultModulePrefix is prepended to configuration names to form the
	// module name declared for each configuration.
	DefaultModulePrefix = declaration.DefaultModulePrefix

	// DefaultPacker is the packing strategy used when none is configured.
	DefaultPacker = pack.DefaultStrategy

	// AssetPrefix and AssetExt frame the content-addressed composite name.
	AssetPrefix = "sprite-"
	AssetExt    = ".svg"

	// assetHashLen is the number of trailing sha1 hex digits in asset names.
	assetHashLen = 20
)

// Artifact kinds, used for hooks, logging and output file naming.
const (
	KindSVG         = "svg"
	KindCSS         = "css"
	KindRuntime     = "js"
	KindBundle      = "bundle"
	KindDeclaration = "dts"
)

// Kinds lists every artifact kind in emission order.
var Kinds = []string{KindSVG, KindDeclaration, KindCSS, KindRuntime, KindBundle}

// =============================================================================
// Configuration
// =============================================================================

// DeclarationOptions names the generated TypeScript types.
type DeclarationOptions struct {
	Module         bool   `json:"module" toml:"module"`
	EnumName       string `json:"enum_name" toml:"enum_name"`
	ClassUnionName string `json:"class_union_name" toml:"class_union_name"`
}

// Configuration is one named output configuration: an icon folder and the
// options for every artifact rendered from it.
type Configuration struct {
	Name        string             `json:"name"`
	Folder      string             `json:"folder"`
	ClassPrefix string             `json:"class_prefix"`
	Declaration DeclarationOptions `json:"declaration"`
	Stylesheets []stylesheet.Rule  `json:"stylesheets"`
}

// Validate checks the configuration. Empty type names are allowed and fall
// back to the emitter defaults.
func (c Configuration) Validate() error {
	if err := errors.ValidateConfigName(c.Name); err != nil {
		return err
	}
	if c.Folder == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "configuration %q has no folder", c.Name)
	}
	if err := errors.ValidateClassPrefix(c.ClassPrefix); err != nil {
		return err
	}
	for _, name := range []string{c.Declaration.EnumName, c.Declaration.ClassUnionName} {
		if name == "" {
			continue
		}
		if err := errors.ValidateTypeName(name); err != nil {
			return err
		}
	}
	for i, r := range c.Stylesheets {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "configuration %q css rule %d", c.Name, i+1)
		}
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options holds the settings shared by every configuration of a project.
type Options struct {
	PublicPath   string `json:"public_path"`
	ModulePrefix string `json:"module_prefix"`
	Packer       string `json:"packer"`
	Duplicates   string `json:"duplicates"`

	// Concurrency bounds parallel document parsing; zero uses GOMAXPROCS.
	Concurrency int `json:"-"`

	// Refresh skips the cache lookup but still stores the fresh result.
	Refresh bool `json:"-"`

	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`

	packer     pack.Packer
	duplicates atlas.DuplicatePolicy
	validated  bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ModulePrefix == "" {
		o.ModulePrefix = DefaultModulePrefix
	}
	if o.Packer == "" {
		o.Packer = DefaultPacker
	}

	p, err := pack.ByName(o.Packer)
	if err != nil {
		return err
	}
	d, err := atlas.ParseDuplicatePolicy(o.Duplicates)
	if err != nil {
		return err
	}
	o.packer, o.duplicates = p, d
	o.Packer, o.Duplicates = p.Name(), string(d)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) atlasOptions() []atlas.Option {
	return []atlas.Option{
		atlas.WithPacker(o.packer),
		atlas.WithDuplicatePolicy(o.duplicates),
		atlas.WithConcurrency(o.Concurrency),
	}
}

// =============================================================================
// Result
// =============================================================================

// Artifacts are the generated outputs of one configuration. They are always
// derived together from one atlas.
type Artifacts struct {
	SVG         []byte `json:"svg"`
	AssetName   string `json:"asset_name"`
	URL         string `json:"url"`
	CSS         string `json:"css"`
	Runtime     string `json:"runtime"`
	Bundle      string `json:"bundle"`
	Declaration string `json:"declaration"`

	// Classes lists the icon class names in atlas order.
	Classes []string `json:"classes"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID uuid.UUID

	// Atlas is the packed layout; nil when the artifacts came from the cache.
	Atlas *atlas.Atlas

	// Diagnostics lists skipped and replaced source files.
	Diagnostics []atlas.Diagnostic

	Artifacts Artifacts
	Stats     Stats

	// CacheHit reports whether the artifacts came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Files   int     `json:"files"`
	Icons   int     `json:"icons"`
	Skipped int     `json:"skipped"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Packer  string  `json:"packer"`
	Fill    float64 `json:"fill"`

	LoadTime   time.Duration `json:"-"`
	PackTime   time.Duration `json:"-"`
	RenderTime time.Duration `json:"-"`
}
