// Package composite merges the icons of an atlas into a single SVG document.
//
// Each icon becomes a nested <svg> viewport positioned at its atlas offset, so
// it can be displayed as a CSS background crop or referenced by id:
//
//	<?xml version="1.0" encoding="utf-8"?>
//	<!-- 2 icons packed -->
//	<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="24" height="40" viewBox="0 0 24 40">
//	  <svg viewBox="0 0 24 24" id="client-add" x="0" y="0" width="24" height="24">
//	    ...
//	  </svg>
//	  <svg viewBox="0 0 16 16" id="client-remove" x="0" y="24" width="16" height="16">
//	    ...
//	  </svg>
//	</svg>
//
// Namespace declarations are removed from every icon and declared once on the
// composite root.
package composite

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/spritetower/pkg/atlas"
	"github.com/matzehuels/spritetower/pkg/render"
	"github.com/matzehuels/spritetower/pkg/svgdoc"
)

// Namespaces always declared on the composite root.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// Render returns the composite document for a. Icon ids are classPrefix+name.
// The documents referenced by a are not modified.
func Render(a *atlas.Atlas, classPrefix string) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	fmt.Fprintf(&buf, "<!-- %d icons packed -->\n", a.Len())

	root := &svgdoc.Node{Name: svgdoc.RootElement, Attrs: hoistNamespaces(a)}
	root.Set("width", render.Num(a.Width))
	root.Set("height", render.Num(a.Height))
	root.Set("viewBox", fmt.Sprintf("0 0 %s %s", render.Num(a.Width), render.Num(a.Height)))

	for _, ic := range a.Icons {
		root.Children = append(root.Children, Element(ic, classPrefix))
	}
	svgdoc.Write(&buf, root, 0)
	return buf.Bytes()
}

// Element returns the rewritten root of one icon: a clone without namespace
// declarations, carrying its id and atlas placement.
func Element(ic atlas.PlacedIcon, classPrefix string) *svgdoc.Node {
	n := ic.Root.Clone()
	n.Delete(svgdoc.IsNamespaceDecl)
	n.Set("id", classPrefix+ic.Name)
	n.Set("x", render.Num(ic.X))
	n.Set("y", render.Num(ic.Y))
	n.Set("width", render.Num(ic.Width()))
	n.Set("height", render.Num(ic.Height()))
	return n
}

// hoistNamespaces collects the namespace declarations of all icons. The SVG
// and XLink namespaces come first; other prefixes follow in first-seen order,
// and the first URI seen for a prefix wins.
func hoistNamespaces(a *atlas.Atlas) []svgdoc.Attr {
	attrs := []svgdoc.Attr{
		{Name: "xmlns", Value: NamespaceSVG},
		{Name: "xmlns:xlink", Value: NamespaceXLink},
	}
	seen := map[string]bool{"xmlns": true, "xmlns:xlink": true}
	for _, ic := range a.Icons {
		for _, attr := range ic.Root.Attrs {
			if !svgdoc.IsNamespaceDecl(attr.Name) || seen[attr.Name] {
				continue
			}
			seen[attr.Name] = true
			attrs = append(attrs, attr)
		}
	}
	return attrs
}
