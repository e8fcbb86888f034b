package svgdoc

import (
	"bytes"
	"strings"
)

const indentUnit = "  "

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#9;",
		"\n", "&#10;",
		"\r", "&#13;",
	)
)

// Write serializes the subtree rooted at n, indented depth levels.
// Elements without children or text are self-closed; an element with text
// only is written on one line. Every element ends with a newline.
func Write(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Name)
	writeAttrs(buf, n.Attrs)

	switch {
	case len(n.Children) == 0 && n.Text == "":
		buf.WriteString("/>\n")
		return
	case len(n.Children) == 0:
		buf.WriteByte('>')
		buf.WriteString(textEscaper.Replace(n.Text))
		writeClose(buf, n.Name)
		return
	}

	buf.WriteString(">\n")
	if n.Text != "" {
		buf.WriteString(indent + indentUnit)
		buf.WriteString(textEscaper.Replace(strings.TrimSpace(n.Text)))
		buf.WriteByte('\n')
	}
	for _, child := range n.Children {
		Write(buf, child, depth+1)
	}
	buf.WriteString(indent)
	writeClose(buf, n.Name)
}

// String returns the serialized subtree at depth zero.
func (n *Node) String() string {
	var buf bytes.Buffer
	Write(&buf, n, 0)
	return buf.String()
}

func writeAttrs(buf *bytes.Buffer, attrs []Attr) {
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(a.Value))
		buf.WriteByte('"')
	}
}

func writeClose(buf *bytes.Buffer, name string) {
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteString(">\n")
}
