package svgdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/matzehuels/spritetower/pkg/errors"
)

// Parse builds a Node tree from XML input.
//
// Prefixes are not resolved: an element or attribute keeps the qualified name
// it was written with. Comments, processing instructions and directives are
// dropped, as is whitespace-only character data. An element may hold text or
// child elements but not both, since the tree cannot keep their relative
// order. Any error is returned with code PARSE_ERROR.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Node
	var root *Node
	rootClosed := false

	for {
		// RawToken keeps prefixes intact; start/end pairing is checked below.
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "malformed markup")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, errors.New(errors.ErrCodeParse, "unexpected element %s after document end", qualified(t.Name))
			}
			elem := &Node{
				Name:  qualified(t.Name),
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				if parent.Text != "" {
					return nil, mixedContent(parent)
				}
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New(errors.ErrCodeParse, "unexpected end element %s", qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if name := qualified(t.Name); name != top.Name {
				return nil, errors.New(errors.ErrCodeParse, "element <%s> closed by </%s>", top.Name, name)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				rootClosed = true
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(t) {
					return nil, errors.New(errors.ErrCodeParse, "unexpected character data outside root element")
				}
				continue
			}
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if len(top.Children) > 0 {
				return nil, mixedContent(top)
			}
			top.Text += string(t)
		}
	}

	if root == nil {
		return nil, errors.Wrap(errors.ErrCodeParse, io.ErrUnexpectedEOF, "no root element")
	}
	if len(stack) > 0 {
		return nil, errors.New(errors.ErrCodeParse, "element <%s> is not closed", stack[len(stack)-1].Name)
	}

	return root, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func mixedContent(n *Node) error {
	return errors.New(errors.ErrCodeParse, "element <%s> mixes text and child elements", n.Name)
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return fmt.Sprintf("%s:%s", n.Space, n.Local)
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, Attr{Name: qualified(a.Name), Value: a.Value})
	}
	return out
}

func isIgnorableOutsideRoot(data []byte) bool {
	for _, r := range string(data) {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
