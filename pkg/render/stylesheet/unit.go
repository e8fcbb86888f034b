package stylesheet

import (
	"math"
	"strings"

	"github.com/matzehuels/spritetower/pkg/errors"
)

// Unit is a CSS length unit.
type Unit string

const (
	UnitPx  Unit = "px"
	UnitEm  Unit = "em"
	UnitRem Unit = "rem"
)

// Relative reports whether lengths in u are expressed relative to a font
// size. Relative units are anchored to the canonical icon size.
func (u Unit) Relative() bool {
	return u == UnitEm || u == UnitRem
}

// ParseUnit parses a unit name. An empty name selects px.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UnitPx, nil
	case UnitPx, UnitEm, UnitRem:
		return u, nil
	}
	return "", errors.New(errors.ErrCodeInvalidUnit, "unknown css unit %q (must be one of: px, em, rem)", s)
}

// Rule is one (selector, scale, unit) triple of a stylesheet configuration.
type Rule struct {
	Selector string  `json:"selector" toml:"selector"`
	Scale    float64 `json:"scale" toml:"scale"`
	Unit     Unit    `json:"unit" toml:"unit"`
}

// Validate checks that the rule can be rendered.
func (r Rule) Validate() error {
	if err := errors.ValidateSelector(r.Selector); err != nil {
		return err
	}
	if r.Scale <= 0 || math.IsInf(r.Scale, 0) || math.IsNaN(r.Scale) {
		return errors.New(errors.ErrCodeInvalidConfig, "css scale for %q must be a positive number, got %v", r.Selector, r.Scale)
	}
	if _, err := ParseUnit(string(r.Unit)); err != nil {
		return err
	}
	return nil
}
