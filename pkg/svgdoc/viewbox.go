package svgdoc

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/spritetower/pkg/errors"
)

// ViewBox is the user-space rectangle declared by a viewBox attribute.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
}

// ParseViewBox parses "min-x min-y width height". Numbers may be separated by
// whitespace, commas or both. Width and height must be finite and positive.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 4 {
		return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "view box %q must have 4 numbers, got %d", s, len(fields))
	}

	var nums [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "view box %q: %q is not a number", s, f)
		}
		nums[i] = v
	}

	vb := ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, errors.New(errors.ErrCodeInvalidViewBox, "view box %q has non-positive size %gx%g", s, vb.Width, vb.Height)
	}
	return vb, nil
}
