package pack

import (
	"math"
	"sort"
)

// Potpack is the free-space list heuristic from mapbox/potpack: boxes are
// visited tallest first and dropped into the most recently created space that
// fits them. Ties keep input order, so the output is deterministic.
type Potpack struct{}

// space is a free rectangle stored by its edges. Split spaces start exactly
// at the edge of the box that produced them, computed as pos+size once, so
// neighbouring boxes never overlap through accumulated rounding.
type space struct {
	x0, y0, x1, y1 float64
}

// Name returns the strategy name.
func (Potpack) Name() string { return StrategyPotpack }

// Pack implements Packer.
func (Potpack) Pack(boxes []Box) Result {
	res := Result{Positions: make([]Point, len(boxes))}
	if len(boxes) == 0 {
		return res
	}

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].H > boxes[order[b]].H
	})

	spaces := []space{{x0: 0, y0: 0, x1: startWidth(boxes), y1: math.Inf(1)}}

	for _, idx := range order {
		b := boxes[idx]
		for i := len(spaces) - 1; i >= 0; i-- {
			s := spaces[i]
			right, bottom := s.x0+b.W, s.y0+b.H
			if right > s.x1 || bottom > s.y1 {
				continue
			}

			res.Positions[idx] = Point{X: s.x0, Y: s.y0}
			res.Width = math.Max(res.Width, right)
			res.Height = math.Max(res.Height, bottom)

			switch {
			case right == s.x1 && bottom == s.y1:
				last := spaces[len(spaces)-1]
				spaces = spaces[:len(spaces)-1]
				if i < len(spaces) {
					spaces[i] = last
				}
			case bottom == s.y1:
				spaces[i].x0 = right
			case right == s.x1:
				spaces[i].y0 = bottom
			default:
				spaces = append(spaces, space{x0: right, y0: s.y0, x1: s.x1, y1: bottom})
				spaces[i].y0 = bottom
			}
			break
		}
	}
	return res
}
