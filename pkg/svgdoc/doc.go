// Package svgdoc loads individual SVG icon documents into a mutable element tree.
//
// # Overview
//
// A document is parsed into a [Node] tree: element name, attributes in source
// order, ordered children and text content. Namespace prefixes are kept as they
// appear in the source (xmlns:xlink, xlink:href) so that a tree can be written
// back out without resolving or renaming anything.
//
// [Load] adds the icon-level checks on top of [Parse]:
//
//   - the root element must be <svg>
//   - the root must carry a viewBox of four numbers with a positive width and height
//   - the icon name is the filename without its extension
//
// Failures from [Load] carry the codes PARSE_ERROR, INVALID_ROOT or
// INVALID_VIEWBOX from [github.com/matzehuels/spritetower/pkg/errors]; callers are
// expected to skip the document and continue with the rest of the batch.
//
// # Serialization
//
// [Write] renders a tree deterministically: two-space indentation per level,
// attributes in stored order, self-closing tags for elements without children
// or text.
//
//	doc, err := svgdoc.Load("add.svg", data)
//	if err != nil {
//	    return err
//	}
//	root := doc.Root.Clone()
//	root.Set("id", "client-add")
//	var buf bytes.Buffer
//	svgdoc.Write(&buf, root, 1)
package svgdoc
