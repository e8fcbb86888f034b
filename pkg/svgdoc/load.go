package svgdoc

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/matzehuels/spritetower/pkg/errors"
)

// RootElement is the only accepted document root.
const RootElement = "svg"

// Document is a loaded icon: its name, element tree and intrinsic size.
type Document struct {
	Name    string
	Root    *Node
	ViewBox ViewBox
}

// Width returns the intrinsic width declared by the view box.
func (d *Document) Width() float64 { return d.ViewBox.Width }

// Height returns the intrinsic height declared by the view box.
func (d *Document) Height() float64 { return d.ViewBox.Height }

// NameFromFile derives an icon name from a filename: the base name without its
// final extension.
func NameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load parses data as an icon document named after filename.
func Load(filename string, data []byte) (*Document, error) {
	root, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", filename)
	}

	if root.Name != RootElement {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "invalid svg root element for %s (%s)", filename, root.Name)
	}

	raw, ok := root.Get("viewBox")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidViewBox, "%s has no viewBox", filename)
	}
	vb, err := ParseViewBox(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidViewBox, err, "invalid bounds for %s", filename)
	}

	return &Document{
		Name:    NameFromFile(filename),
		Root:    root,
		ViewBox: vb,
	}, nil
}
