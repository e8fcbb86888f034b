package pack

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/matzehuels/spritetower/pkg/errors"
)

func packers() []Packer {
	return []Packer{Skyline{}, Potpack{}}
}

func randomBoxes(seed int64, n int) []Box {
	rng := rand.New(rand.NewSource(seed))
	sizes := []float64{8, 12, 16, 20, 24, 32, 48, 10.5}
	boxes := make([]Box, n)
	for i := range boxes {
		boxes[i] = Box{W: sizes[rng.Intn(len(sizes))], H: sizes[rng.Intn(len(sizes))]}
	}
	return boxes
}

func TestPackValidity(t *testing.T) {
	for _, p := range packers() {
		t.Run(p.Name(), func(t *testing.T) {
			for seed := int64(1); seed <= 25; seed++ {
				boxes := randomBoxes(seed, int(seed)*7)
				res := p.Pack(boxes)
				if err := Validate(boxes, res); err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
			}
		})
	}
}

// fractionalBoxes returns boxes whose sides are multiples of 0.1, the way
// viewBoxes exported from design tools often are. Sums of such sides are not
// exact in float64.
func fractionalBoxes(seed int64, n int) []Box {
	rng := rand.New(rand.NewSource(seed))
	boxes := make([]Box, n)
	for i := range boxes {
		boxes[i] = Box{W: float64(rng.Intn(40)+1) * 0.1, H: float64(rng.Intn(40)+1) * 0.1}
	}
	return boxes
}

func TestPackValidityFractional(t *testing.T) {
	fixed := [][]Box{
		{{24.5, 24.5}, {24.5, 12.25}, {0.3, 0.3}, {0.3, 0.7}, {12.25, 24.5}},
		{{3.2, 0.5}, {3.8000000000000003, 0.30000000000000004}, {0.1, 0.2}, {0.7, 0.1}, {1.3, 0.5}},
	}
	for _, p := range packers() {
		t.Run(p.Name(), func(t *testing.T) {
			for i, boxes := range fixed {
				if err := Validate(boxes, p.Pack(boxes)); err != nil {
					t.Errorf("fixture %d: %v", i, err)
				}
			}
			for seed := int64(1); seed <= 2000; seed++ {
				boxes := fractionalBoxes(seed, 5+int(seed%40))
				if err := Validate(boxes, p.Pack(boxes)); err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
			}
		})
	}
}

func TestPackMinimalBounds(t *testing.T) {
	for _, p := range packers() {
		t.Run(p.Name(), func(t *testing.T) {
			boxes := randomBoxes(99, 40)
			res := p.Pack(boxes)

			var maxX, maxY float64
			for i, b := range boxes {
				maxX = max(maxX, res.Positions[i].X+b.W)
				maxY = max(maxY, res.Positions[i].Y+b.H)
			}
			if res.Width != maxX || res.Height != maxY {
				t.Errorf("bounds = %gx%g, want %gx%g", res.Width, res.Height, maxX, maxY)
			}
		})
	}
}

func TestPackDeterministic(t *testing.T) {
	for _, p := range packers() {
		t.Run(p.Name(), func(t *testing.T) {
			boxes := randomBoxes(7, 60)
			a := p.Pack(boxes)
			b := p.Pack(append([]Box(nil), boxes...))
			if !reflect.DeepEqual(a, b) {
				t.Error("identical input produced different placements")
			}
		})
	}
}

func TestPackEmpty(t *testing.T) {
	for _, p := range packers() {
		res := p.Pack(nil)
		if res.Width != 0 || res.Height != 0 {
			t.Errorf("%s: empty input = %gx%g, want 0x0", p.Name(), res.Width, res.Height)
		}
		if len(res.Positions) != 0 {
			t.Errorf("%s: empty input returned %d positions", p.Name(), len(res.Positions))
		}
		if err := Validate(nil, res); err != nil {
			t.Errorf("%s: %v", p.Name(), err)
		}
	}
}

func TestPackSingle(t *testing.T) {
	for _, p := range packers() {
		boxes := []Box{{W: 16, H: 20}}
		res := p.Pack(boxes)
		if res.Positions[0] != (Point{}) {
			t.Errorf("%s: single box at %+v, want origin", p.Name(), res.Positions[0])
		}
		if res.Width != 16 || res.Height != 20 {
			t.Errorf("%s: bounds = %gx%g, want 16x20", p.Name(), res.Width, res.Height)
		}
	}
}

func TestSkylineInputOrder(t *testing.T) {
	boxes := []Box{{24, 24}, {24, 24}, {24, 24}, {32, 32}}
	res := Skyline{}.Pack(boxes)

	want := []Point{{0, 0}, {24, 0}, {0, 24}, {0, 48}}
	if !reflect.DeepEqual(res.Positions, want) {
		t.Errorf("positions = %v, want %v", res.Positions, want)
	}
	if res.Width != 48 || res.Height != 80 {
		t.Errorf("bounds = %gx%g, want 48x80", res.Width, res.Height)
	}
}

func TestPotpackTallestFirst(t *testing.T) {
	boxes := []Box{{24, 24}, {24, 24}, {24, 24}, {32, 32}}
	res := Potpack{}.Pack(boxes)

	want := []Point{{0, 32}, {24, 32}, {0, 56}, {0, 0}}
	if !reflect.DeepEqual(res.Positions, want) {
		t.Errorf("positions = %v, want %v", res.Positions, want)
	}
	if res.Width != 48 || res.Height != 80 {
		t.Errorf("bounds = %gx%g, want 48x80", res.Width, res.Height)
	}
}

func TestValidate(t *testing.T) {
	boxes := []Box{{10, 10}, {10, 10}}
	tests := []struct {
		name    string
		res     Result
		wantErr bool
	}{
		{"side by side", Result{Positions: []Point{{0, 0}, {10, 0}}, Width: 20, Height: 10}, false},
		{"overlap", Result{Positions: []Point{{0, 0}, {5, 5}}, Width: 15, Height: 15}, true},
		{"out of bounds", Result{Positions: []Point{{0, 0}, {10, 0}}, Width: 15, Height: 10}, true},
		{"negative", Result{Positions: []Point{{-1, 0}, {10, 0}}, Width: 20, Height: 10}, true},
		{"missing position", Result{Positions: []Point{{0, 0}}, Width: 20, Height: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(boxes, tt.res)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodePackingInvariant) {
				t.Errorf("code = %v, want PACKING_INVARIANT_VIOLATION", errors.GetCode(err))
			}
		})
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", StrategySkyline, false},
		{"skyline", StrategySkyline, false},
		{"Potpack", StrategyPotpack, false},
		{"guillotine", "", true},
	}

	for _, tt := range tests {
		p, err := ByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && p.Name() != tt.want {
			t.Errorf("ByName(%q) = %s, want %s", tt.name, p.Name(), tt.want)
		}
	}
}

func TestFill(t *testing.T) {
	boxes := []Box{{10, 10}, {10, 10}}
	res := Result{Positions: []Point{{0, 0}, {10, 0}}, Width: 20, Height: 20}
	if got := res.Fill(boxes); got != 0.5 {
		t.Errorf("Fill() = %g, want 0.5", got)
	}
	if got := (Result{}).Fill(nil); got != 0 {
		t.Errorf("empty Fill() = %g, want 0", got)
	}
}
