// Package atlas builds a packed sprite atlas from a set of SVG icon files.
//
// # Overview
//
// [Generate] is the core of spritetower. It takes the raw bytes of every file
// in an icon directory and returns an [Atlas]: the usable icons in input order,
// each with a position, plus the size of the smallest rectangle containing
// them all. Callers that want to time or observe the two stages separately
// use [Load] and then [Pack].
//
//	files := []atlas.SourceFile{
//	    {Name: "add.svg", Data: addSVG},
//	    {Name: "remove.svg", Data: removeSVG},
//	}
//	a, diags, err := atlas.Generate(ctx, files, atlas.WithPacker(pack.Potpack{}))
//
// # Failure Model
//
// A file that cannot be used (malformed markup, a root other than <svg>, a
// missing or degenerate viewBox) is skipped and reported as a [Diagnostic];
// the rest of the batch continues. Generation fails only on conditions that
// would make the output ambiguous or wrong:
//
//   - duplicate icon names with [DuplicateFail]
//   - two icon names mapping to the same exported identifier
//   - a packer returning overlapping or out-of-bounds placements
//
// # Geometry
//
// [Atlas.CanonicalSize] returns the most common icon size. Stylesheet
// rendering uses it to anchor relative units and to decide which icons need
// explicit size overrides.
//
// An Atlas is built fresh on every call and holds no state beyond the values
// it exposes. The documents it references are shared with no one else;
// renderers clone them before rewriting attributes.
package atlas
