package svgdoc

import "strings"

// Attr is a single attribute. Name is the qualified name as written in the
// source, including any prefix ("xlink:href").
type Attr struct {
	Name  string
	Value string
}

// Node is an element in a document tree.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Get returns the value of the named attribute.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set replaces the value of the named attribute in place, or appends it when
// the attribute is not present yet.
func (n *Node) Set(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Delete removes every attribute for which match returns true and reports how
// many were removed.
func (n *Node) Delete(match func(name string) bool) int {
	kept := n.Attrs[:0]
	removed := 0
	for _, a := range n.Attrs {
		if match(a.Name) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	n.Attrs = kept
	return removed
}

// IsNamespaceDecl reports whether name declares a namespace (xmlns or xmlns:*).
func IsNamespaceDecl(name string) bool {
	return name == "xmlns" || strings.HasPrefix(name, "xmlns:")
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Name: n.Name,
		Text: n.Text,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}
