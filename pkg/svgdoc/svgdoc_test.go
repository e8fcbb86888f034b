package svgdoc

import (
	"bytes"
	"testing"

	"github.com/matzehuels/spritetower/pkg/errors"
)

const addIcon = `<?xml version="1.0" encoding="utf-8"?>
<!-- exported -->
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 16 16">
  <title>Add</title>
  <g fill="#fff">
    <path d="M8 0v16M0 8h16"/>
    <use xlink:href="#p"/>
  </g>
</svg>`

func TestParse(t *testing.T) {
	root, err := ParseString(addIcon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if root.Name != "svg" {
		t.Errorf("root name = %q, want svg", root.Name)
	}
	if len(root.Attrs) != 3 {
		t.Fatalf("root attrs = %d, want 3", len(root.Attrs))
	}
	if root.Attrs[1].Name != "xmlns:xlink" {
		t.Errorf("second attr = %q, want xmlns:xlink", root.Attrs[1].Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if got := root.Children[0].Text; got != "Add" {
		t.Errorf("title text = %q, want Add", got)
	}

	use := root.Children[1].Children[1]
	if v, ok := use.Get("xlink:href"); !ok || v != "#p" {
		t.Errorf("use xlink:href = %q, %v", v, ok)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not xml", "PNG\x89 binary"},
		{"unclosed", "<svg><g></svg>"},
		{"mismatched", "<svg><g></h></svg>"},
		{"trailing element", "<svg/><svg/>"},
		{"text outside root", "<svg/>hello"},
		{"truncated", "<svg viewBox=\"0 0 1 1\""},
		{"text then element", "<svg><text>a<tspan>b</tspan></text></svg>"},
		{"element then text", "<svg><text><tspan>b</tspan>c</text></svg>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("code = %v, want PARSE_ERROR", errors.GetCode(err))
			}
		})
	}
}

func TestParseWhitespaceAroundChildren(t *testing.T) {
	root, err := ParseString("<svg>\n  <text>\n    <tspan>b</tspan>\n  </text>\n</svg>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	text := root.Children[0]
	if text.Text != "" || len(text.Children) != 1 || text.Children[0].Text != "b" {
		t.Errorf("text = %+v", text)
	}
}

func TestWrite(t *testing.T) {
	root, err := ParseString(addIcon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	Write(&buf, root, 1)

	want := `  <svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 16 16">
    <title>Add</title>
    <g fill="#fff">
      <path d="M8 0v16M0 8h16"/>
      <use xlink:href="#p"/>
    </g>
  </svg>
`
	if got := buf.String(); got != want {
		t.Errorf("Write() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteEscapes(t *testing.T) {
	n := &Node{Name: "text", Attrs: []Attr{{Name: "data-x", Value: `a"b<c&`}}, Text: "1 < 2 & 3"}
	want := `<text data-x="a&quot;b&lt;c&amp;">1 &lt; 2 &amp; 3</text>` + "\n"
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	root, err := ParseString(addIcon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	again, err := ParseString(root.String())
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if root.String() != again.String() {
		t.Error("serialization is not stable across a parse round trip")
	}
}

func TestNodeAttrs(t *testing.T) {
	n := &Node{Name: "svg", Attrs: []Attr{
		{Name: "xmlns", Value: "http://www.w3.org/2000/svg"},
		{Name: "viewBox", Value: "0 0 1 1"},
		{Name: "xmlns:xlink", Value: "http://www.w3.org/1999/xlink"},
	}}

	n.Set("viewBox", "0 0 2 2")
	if v, _ := n.Get("viewBox"); v != "0 0 2 2" {
		t.Errorf("Set did not replace in place: %q", v)
	}
	if n.Attrs[1].Name != "viewBox" {
		t.Error("Set changed attribute order")
	}

	n.Set("id", "x")
	if n.Attrs[len(n.Attrs)-1].Name != "id" {
		t.Error("Set should append new attributes")
	}

	if removed := n.Delete(IsNamespaceDecl); removed != 2 {
		t.Errorf("Delete removed %d, want 2", removed)
	}
	if _, ok := n.Get("xmlns"); ok {
		t.Error("xmlns should be removed")
	}
	if len(n.Attrs) != 2 {
		t.Errorf("attrs = %d, want 2", len(n.Attrs))
	}
}

func TestClone(t *testing.T) {
	root, err := ParseString(addIcon)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := root.Clone()
	c.Set("id", "changed")
	c.Children[1].Children[0].Set("d", "M0 0")

	if _, ok := root.Get("id"); ok {
		t.Error("Clone shares attributes with the original")
	}
	if v, _ := root.Children[1].Children[0].Get("d"); v != "M8 0v16M0 8h16" {
		t.Error("Clone shares children with the original")
	}
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		input   string
		want    ViewBox
		wantErr bool
	}{
		{"0 0 16 16", ViewBox{0, 0, 16, 16}, false},
		{"0,0,24,24", ViewBox{0, 0, 24, 24}, false},
		{" -2  -2 , 20.5 10 ", ViewBox{-2, -2, 20.5, 10}, false},
		{"", ViewBox{}, true},
		{"0 0 16", ViewBox{}, true},
		{"0 0 16 16 1", ViewBox{}, true},
		{"0 0 a 16", ViewBox{}, true},
		{"0 0 0 16", ViewBox{}, true},
		{"0 0 16 -1", ViewBox{}, true},
		{"0 0 NaN 16", ViewBox{}, true},
		{"0 0 Inf 16", ViewBox{}, true},
	}

	for _, tt := range tests {
		got, err := ParseViewBox(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewBox(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidViewBox) {
			t.Errorf("ParseViewBox(%q) code = %v", tt.input, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseViewBox(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	doc, err := Load("icons/add_friend.svg", []byte(addIcon))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "add_friend" {
		t.Errorf("Name = %q, want add_friend", doc.Name)
	}
	if doc.Width() != 16 || doc.Height() != 16 {
		t.Errorf("size = %gx%g, want 16x16", doc.Width(), doc.Height())
	}
}

func TestLoadSkips(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"malformed", "<svg", errors.ErrCodeParse},
		{"wrong root", `<html viewBox="0 0 1 1"/>`, errors.ErrCodeInvalidRoot},
		{"no viewbox", `<svg width="10" height="10"/>`, errors.ErrCodeInvalidViewBox},
		{"bad viewbox", `<svg viewBox="0 0 x y"/>`, errors.ErrCodeInvalidViewBox},
		{"zero size", `<svg viewBox="0 0 0 0"/>`, errors.ErrCodeInvalidViewBox},
		{"mixed content", `<svg viewBox="0 0 1 1"><text>a<tspan>b</tspan>c</text></svg>`, errors.ErrCodeParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("x.svg", []byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
			if !errors.IsSkip(err) {
				t.Error("loader errors must be skippable")
			}
		})
	}
}

func TestNameFromFile(t *testing.T) {
	tests := map[string]string{
		"add.svg":              "add",
		"/a/b/arrow_down.svg":  "arrow_down",
		"addon-collection.svg": "addon-collection",
		"noext":                "noext",
		"icon.min.svg":         "icon.min",
	}
	for in, want := range tests {
		if got := NameFromFile(in); got != want {
			t.Errorf("NameFromFile(%q) = %q, want %q", in, got, want)
		}
	}
}
