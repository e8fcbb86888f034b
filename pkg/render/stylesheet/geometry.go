package stylesheet

import "github.com/matzehuels/spritetower/pkg/atlas"

// Geometry is the resolved scaling of one rule against one atlas.
//
// For px the scale factors are rule.Scale on both axes. For relative units
// they are rule.Scale divided by the canonical width and height, so a rule
// with scale 1 makes a canonical icon exactly 1em wide. An atlas with a zero
// canonical size resolves relative units to a zero scale.
type Geometry struct {
	Canonical atlas.Size
	ScaleX    float64
	ScaleY    float64
	Unit      Unit

	scale      float64
	divX, divY float64
}

// Resolve computes the geometry of rule for a.
func Resolve(a *atlas.Atlas, rule Rule) Geometry {
	unit, err := ParseUnit(string(rule.Unit))
	if err != nil {
		unit = UnitPx
	}

	g := Geometry{
		Canonical: a.CanonicalSize(),
		Unit:      unit,
		scale:     rule.Scale,
		divX:      1,
		divY:      1,
	}
	if unit.Relative() {
		g.divX, g.divY = g.Canonical.W, g.Canonical.H
	}
	g.ScaleX = g.X(1)
	g.ScaleY = g.Y(1)
	return g
}

// X scales a horizontal length. The product is taken before the division so
// that canonical multiples stay exact (48 * 1 / 24 is 2, not 1.9999...).
func (g Geometry) X(v float64) float64 { return scaled(v, g.scale, g.divX) }

// Y scales a vertical length.
func (g Geometry) Y(v float64) float64 { return scaled(v, g.scale, g.divY) }

func scaled(v, scale, div float64) float64 {
	if div == 0 {
		return 0
	}
	return v * scale / div
}
