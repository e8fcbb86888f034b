package pipeline

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/observability"
	"github.com/matzehuels/spritetower/pkg/render/composite"
	"github.com/matzehuels/spritetower/pkg/render/declaration"
	"github.com/matzehuels/spritetower/pkg/render/runtime"
	"github.com/matzehuels/spritetower/pkg/render/stylesheet"
)

// AssetName returns the content-addressed file name of a composite document:
// "sprite-" followed by the last 20 hex digits of its sha1.
func AssetName(svg []byte) string {
	sum := sha1.Sum(svg)
	digest := hex.EncodeToString(sum[:])
	return AssetPrefix + digest[len(digest)-assetHashLen:] + AssetExt
}

// Render emits every artifact for a.
//
// The composite and the declaration are independent of where the composite
// is published and are rendered first; the stylesheet and runtime module
// embed its URL and run once the asset name is known.
func Render(ctx context.Context, a *atlas.Atlas, cfg Configuration, opts Options) (Artifacts, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Artifacts{}, err
	}

	start := time.Now()
	observability.Generate().OnRenderStart(ctx, Kinds)
	art, err := render(ctx, a, cfg, opts)
	observability.Generate().OnRenderComplete(ctx, Kinds, time.Since(start), err)
	return art, err
}

func render(ctx context.Context, a *atlas.Atlas, cfg Configuration, opts Options) (Artifacts, error) {
	var art Artifacts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		art.SVG = composite.Render(a, cfg.ClassPrefix)
		return gctx.Err()
	})
	g.Go(func() error {
		art.Declaration = declaration.Render(a, declaration.Options{
			EnumName:       cfg.Declaration.EnumName,
			ClassUnionName: cfg.Declaration.ClassUnionName,
			Module:         cfg.Declaration.Module,
			ModulePrefix:   opts.ModulePrefix,
			ClassPrefix:    cfg.ClassPrefix,
		}, cfg.Name, cfg.Folder)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Artifacts{}, err
	}

	art.AssetName = AssetName(art.SVG)
	art.URL = opts.PublicPath + art.AssetName

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		art.CSS = stylesheet.Render(a, cfg.ClassPrefix, art.URL, cfg.Stylesheets...)
		return gctx.Err()
	})
	g.Go(func() error {
		art.Runtime = runtime.Render(a, runtime.Options{
			EnumName:    cfg.Declaration.EnumName,
			ClassPrefix: cfg.ClassPrefix,
		}, art.URL)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Artifacts{}, err
	}

	art.Bundle = runtime.Bundle(art.CSS, art.Runtime)
	for _, m := range runtime.Members(a, cfg.ClassPrefix) {
		art.Classes = append(art.Classes, m.Class)
	}
	return art, nil
}
