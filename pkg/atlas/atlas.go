package atlas

import (
	"fmt"

	"github.com/matzehuels/spritetower/pkg/errors"
	"github.com/matzehuels/spritetower/pkg/svgdoc"
)

// SourceFile is one input file as handed over by the host.
type SourceFile struct {
	Name string // filename, used for the icon name and diagnostics
	Data []byte
}

// PlacedIcon is a loaded document with its position in the atlas.
type PlacedIcon struct {
	*svgdoc.Document
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Size returns the intrinsic size of the icon.
func (p PlacedIcon) Size() Size {
	return Size{W: p.Width(), H: p.Height()}
}

// Atlas is the packed set of icons. Icons keep input order.
type Atlas struct {
	Icons  []PlacedIcon
	Width  float64
	Height float64

	// Packer is the name of the strategy that produced the placements.
	Packer string
}

// Len returns the number of icons in the atlas.
func (a *Atlas) Len() int { return len(a.Icons) }

// Names returns the icon names in atlas order.
func (a *Atlas) Names() []string {
	names := make([]string, len(a.Icons))
	for i, ic := range a.Icons {
		names[i] = ic.Name
	}
	return names
}

// Lookup returns the icon with the given name.
func (a *Atlas) Lookup(name string) (PlacedIcon, bool) {
	for _, ic := range a.Icons {
		if ic.Name == name {
			return ic, true
		}
	}
	return PlacedIcon{}, false
}

// CanonicalSize returns the most frequent icon size. Ties go to the size seen
// first. An empty atlas has a zero canonical size.
func (a *Atlas) CanonicalSize() Size {
	counts := make(map[Size]int)
	var order []Size
	for _, ic := range a.Icons {
		s := ic.Size()
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	var best Size
	bestCount := 0
	for _, s := range order {
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// Diagnostic records a source file that was skipped or replaced.
type Diagnostic struct {
	File    string
	Code    errors.Code
	Message string
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.File, d.Message, d.Code)
}

func diagnosticFor(file string, err error) Diagnostic {
	return Diagnostic{
		File:    file,
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	}
}
