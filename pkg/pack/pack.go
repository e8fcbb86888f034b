// Package pack assigns non-overlapping positions to a list of rectangles.
//
// # Overview
//
// A [Packer] takes boxes in a fixed order and returns one position per box
// (same order) together with the smallest rectangle that contains every
// placement. Packing strategies are interchangeable; any implementation must
// be deterministic, must not produce overlaps and must keep every box inside
// the reported bounds. [Validate] checks those invariants.
//
// Two strategies are provided:
//
//   - [Skyline] (default): boxes are placed in input order at the lowest,
//     then leftmost, position on a skyline of fixed width.
//   - [Potpack]: the free-space heuristic popularised by mapbox/potpack. Boxes
//     are visited tallest first; results are still reported in input order.
//
// Both start from a strip width of max(widest box, ceil(sqrt(area / 0.95))),
// which keeps the result close to square.
//
//	res := pack.Skyline{}.Pack([]pack.Box{{W: 24, H: 24}, {W: 32, H: 32}})
//	if err := pack.Validate(boxes, res); err != nil {
//	    panic(err) // packer bug
//	}
package pack

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/spritetower/pkg/errors"
)

// Strategy names accepted by ByName.
const (
	StrategySkyline = "skyline"
	StrategyPotpack = "potpack"

	// DefaultStrategy is used when no strategy is configured.
	DefaultStrategy = StrategySkyline
)

// targetFill is the fill ratio used to derive the initial strip width.
const targetFill = 0.95

// Box is the size of a rectangle to place.
type Box struct {
	W, H float64
}

// Point is the top-left corner assigned to a box.
type Point struct {
	X, Y float64
}

// Result is the outcome of a packing run.
type Result struct {
	// Positions has one entry per input box, in input order.
	Positions []Point
	// Width and Height describe the minimal rectangle containing all boxes.
	Width, Height float64
}

// Fill returns the fraction of the bounding rectangle covered by boxes.
func (r Result) Fill(boxes []Box) float64 {
	if r.Width == 0 || r.Height == 0 {
		return 0
	}
	area := 0.0
	for _, b := range boxes {
		area += b.W * b.H
	}
	return area / (r.Width * r.Height)
}

// Packer computes placements for boxes.
type Packer interface {
	Name() string
	Pack(boxes []Box) Result
}

// ByName returns the packer registered under name. An empty name selects
// DefaultStrategy.
func ByName(name string) (Packer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategySkyline:
		return Skyline{}, nil
	case StrategyPotpack:
		return Potpack{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPacker, "unknown packer %q (must be one of: %s, %s)", name, StrategySkyline, StrategyPotpack)
}

// startWidth returns the strip width both strategies start from.
func startWidth(boxes []Box) float64 {
	area, maxW := 0.0, 0.0
	for _, b := range boxes {
		area += b.W * b.H
		maxW = math.Max(maxW, b.W)
	}
	return math.Max(math.Ceil(math.Sqrt(area/targetFill)), maxW)
}

// Validate checks that res is a valid packing of boxes: one position per box,
// no two boxes overlapping, every box inside [0, Width) x [0, Height).
// A violation means the packer is broken and is reported with code
// PACKING_INVARIANT_VIOLATION.
func Validate(boxes []Box, res Result) error {
	if len(res.Positions) != len(boxes) {
		return violation("packer returned %d positions for %d boxes", len(res.Positions), len(boxes))
	}

	for i, b := range boxes {
		p := res.Positions[i]
		if p.X < 0 || p.Y < 0 || p.X+b.W > res.Width || p.Y+b.H > res.Height {
			return violation("box %d (%gx%g at %g,%g) is outside the %gx%g atlas", i, b.W, b.H, p.X, p.Y, res.Width, res.Height)
		}
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if overlaps(boxes[i], res.Positions[i], boxes[j], res.Positions[j]) {
				return violation("boxes %d and %d overlap", i, j)
			}
		}
	}
	return nil
}

func overlaps(a Box, pa Point, b Box, pb Point) bool {
	return pa.X < pb.X+b.W && pb.X < pa.X+a.W &&
		pa.Y < pb.Y+b.H && pb.Y < pa.Y+a.H
}

func violation(format string, args ...any) error {
	return errors.New(errors.ErrCodePackingInvariant, "%s", fmt.Sprintf(format, args...))
}
