package render

import "strconv"

// Num formats v with the fewest digits that round-trip, never in exponent
// notation. Negative zero is written as "0".
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Length formats v followed by unit. Zero is written without a unit.
func Length(v float64, unit string) string {
	if v == 0 {
		return "0"
	}
	return Num(v) + unit
}
