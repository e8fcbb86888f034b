package render

import (
	"math"
	"testing"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{24, "24"},
		{-48, "-48"},
		{0.5, "0.5"},
		{80.0 / 24, "3.3333333333333335"},
		{1e-7, "0.0000001"},
		{1e21, "1000000000000000000000"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		in   float64
		unit string
		want string
	}{
		{0, "px", "0"},
		{math.Copysign(0, -1), "em", "0"},
		{-24, "px", "-24px"},
		{1.5, "em", "1.5em"},
	}
	for _, tt := range tests {
		if got := Length(tt.in, tt.unit); got != tt.want {
			t.Errorf("Length(%v, %q) = %q, want %q", tt.in, tt.unit, got, tt.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"client-add", `"client-add"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\\b\n", `"a\\b\n"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCSSString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/static/sprite-abc.svg", `"/static/sprite-abc.svg"`},
		{`a"b`, `"a\"b"`},
		{`c:\icons`, `"c:\\icons"`},
		{"a\tb\r\n", `"a\9 b\d \a "`},
		{"ü", `"ü"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := CSSString(tt.in); got != tt.want {
			t.Errorf("CSSString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
