// Package render holds the emitters that turn a packed atlas into text.
//
// # Overview
//
// Every emitter is a pure function of an [atlas.Atlas] and its options. None
// of them can fail on a valid atlas and none of them mutates it:
//
//   - [composite]: the merged SVG document
//   - [stylesheet]: CSS rules addressing each icon inside the composite
//   - [runtime]: a CommonJS module with the icon table
//   - [declaration]: TypeScript declarations for the runtime module
//
// All four agree on the published identifier of an icon, which is always
// class prefix + icon name.
//
//	svg := composite.Render(a, "client-")
//	css := stylesheet.Render(a, "client-", url, stylesheet.Rule{Selector: ".icon", Scale: 1, Unit: stylesheet.UnitPx})
//	js := runtime.Render(a, runtime.Options{ClassPrefix: "client-", EnumName: "Icons"}, url)
//
// This package itself provides the number formatting shared by the emitters.
//
// [atlas.Atlas]: github.com/matzehuels/spritetower/pkg/atlas.Atlas
// [composite]: github.com/matzehuels/spritetower/pkg/render/composite
// [stylesheet]: github.com/matzehuels/spritetower/pkg/render/stylesheet
// [runtime]: github.com/matzehuels/spritetower/pkg/render/runtime
// [declaration]: github.com/matzehuels/spritetower/pkg/render/declaration
package render
