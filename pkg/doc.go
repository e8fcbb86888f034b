// Package pkg provides the core libraries for spritetower, an SVG sprite
// atlas generator.
//
// # Overview
//
// Spritetower reads a folder of SVG icons, packs them into one composite
// SVG and emits everything a web frontend needs to show a single icon out
// of that composite: a stylesheet, a CommonJS runtime module and TypeScript
// declarations.
//
// # Architecture
//
// The typical data flow:
//
//	icon folder
//	     ↓
//	[svgdoc] (parse each file into an element tree)
//	     ↓
//	[atlas] (name icons, reject collisions, [pack] positions)
//	     ↓
//	[render] (composite SVG, CSS, runtime JS, .d.ts)
//	     ↓
//	[pipeline] (content-hashed asset name, caching via [cache])
//
// # Quick Start
//
//	files, _ := pipeline.ReadFolder("icons/client")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Configuration{
//	    Name:        "client",
//	    Folder:      "icons/client",
//	    ClassPrefix: "client-",
//	}, files, pipeline.Options{PublicPath: "/static/"})
//	os.WriteFile(res.Artifacts.AssetName, res.Artifacts.SVG, 0644)
//
// # Main Packages
//
// [atlas] - Loading and packing. Duplicate names are replaced or rejected
// according to [atlas.DuplicatePolicy]; unparseable files become diagnostics.
//
// [pack] - Rectangle packers. Skyline is the default, potpack is available
// for comparison.
//
// [render] - Emitters for the composite document and the frontend files.
//
// [pipeline] - One generation pass per configuration, shared by the CLI
// and the development server.
//
// [cache] - Artifact storage with file, bbolt, Redis and MongoDB backends.
//
// [config] - The spritetower.toml project file and its environment overrides.
//
// [watch] - Debounced folder watching for "spritetower watch".
//
// [server] - The chi development server behind "spritetower serve".
//
// [errors] and [observability] - Coded errors and instrumentation hooks.
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/...
//
// [svgdoc]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/svgdoc
// [atlas]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/atlas
// [atlas.DuplicatePolicy]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/atlas#DuplicatePolicy
// [pack]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/pack
// [render]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/config
// [watch]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/watch
// [server]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/spritetower/pkg/observability
package pkg
