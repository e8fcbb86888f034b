package pack

import "math"

// Skyline places boxes in input order at the lowest, then leftmost, position
// on a skyline of fixed width.
type Skyline struct{}

// segment is the horizontal run [x0, x1) of the skyline at height y. Edges
// are stored rather than widths so a box edge and the segment it starts
// are the same float.
type segment struct {
	x0, x1, y float64
}

// Name returns the strategy name.
func (Skyline) Name() string { return StrategySkyline }

// Pack implements Packer.
func (Skyline) Pack(boxes []Box) Result {
	res := Result{Positions: make([]Point, len(boxes))}
	if len(boxes) == 0 {
		return res
	}

	stripW := startWidth(boxes)
	sky := []segment{{x0: 0, x1: stripW, y: 0}}

	for i, b := range boxes {
		bestIdx, bestY := -1, math.Inf(1)
		for j := range sky {
			y, ok := fitAt(sky, j, b.W, stripW)
			if !ok {
				continue
			}
			// Segments are ordered by x, so the first minimum is the leftmost.
			if y < bestY {
				bestIdx, bestY = j, y
			}
		}

		p := Point{X: sky[bestIdx].x0, Y: bestY}
		res.Positions[i] = p
		res.Width = math.Max(res.Width, p.X+b.W)
		res.Height = math.Max(res.Height, p.Y+b.H)

		sky = raise(sky, p.X, p.X+b.W, p.Y+b.H)
	}
	return res
}

// fitAt returns the height a box of width w rests at when its left edge is
// aligned with segment j.
func fitAt(sky []segment, j int, w, stripW float64) (float64, bool) {
	x := sky[j].x0
	end := x + w
	if end > stripW {
		return 0, false
	}
	y := 0.0
	for k := j; k < len(sky) && sky[k].x0 < end; k++ {
		y = math.Max(y, sky[k].y)
	}
	return y, true
}

// raise lifts the skyline over [x, end) to height top.
func raise(sky []segment, x, end, top float64) []segment {
	out := make([]segment, 0, len(sky)+2)
	for _, s := range sky {
		if s.x1 <= x || s.x0 >= end {
			out = append(out, s)
			continue
		}
		if s.x0 < x {
			out = append(out, segment{x0: s.x0, x1: x, y: s.y})
		}
		if len(out) == 0 || out[len(out)-1].x1 <= x {
			out = append(out, segment{x0: x, x1: end, y: top})
		}
		if s.x1 > end {
			out = append(out, segment{x0: end, x1: s.x1, y: s.y})
		}
	}
	return merge(out)
}

// merge joins neighbouring segments of equal height.
func merge(sky []segment) []segment {
	out := sky[:0]
	for _, s := range sky {
		if n := len(out); n > 0 && out[n-1].y == s.y {
			out[n-1].x1 = s.x1
			continue
		}
		out = append(out, s)
	}
	return out
}
