package formula

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// RoundingMode is a policy for rounding a value to a fixed scale. The zero
// value is HalfUp.
type RoundingMode int

const (
	// HalfUp rounds to the nearest neighbor, ties away from zero.
	HalfUp RoundingMode = iota
	// HalfDown rounds to the nearest neighbor, ties toward zero.
	HalfDown
	// HalfEven rounds to the nearest neighbor, ties to the even neighbor.
	HalfEven
	// Up rounds away from zero.
	Up
	// Down rounds toward zero.
	Down
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Floor rounds toward negative infinity.
	Floor
	// Unnecessary asserts that no rounding is needed. Operations that would
	// discard a nonzero digit fail with a *RoundingError.
	Unnecessary

	nmodes
)

var modenames = [nmodes]string{
	HalfUp:      "half_up",
	HalfDown:    "half_down",
	HalfEven:    "half_even",
	Up:          "up",
	Down:        "down",
	Ceiling:     "ceiling",
	Floor:       "floor",
	Unnecessary: "unnecessary",
}

var rounders = [nmodes]apd.Rounder{
	HalfUp:   apd.RoundHalfUp,
	HalfDown: apd.RoundHalfDown,
	HalfEven: apd.RoundHalfEven,
	Up:       apd.RoundUp,
	Down:     apd.RoundDown,
	Ceiling:  apd.RoundCeiling,
	Floor:    apd.RoundFloor,
	// Unnecessary truncates and then checks whether anything was lost.
	Unnecessary: apd.RoundDown,
}

func (m RoundingMode) valid() bool {
	return 0 <= m && m < nmodes
}

func (m RoundingMode) String() string {
	if !m.valid() {
		return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
	}
	return modenames[m]
}

// ParseRoundingMode returns the rounding mode with the given name, e.g.
// "half_up" or "floor".
func ParseRoundingMode(name string) (RoundingMode, error) {
	for m, s := range modenames {
		if s == name {
			return RoundingMode(m), nil
		}
	}
	return 0, errors.Errorf("unknown rounding mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m RoundingMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, errors.Errorf("invalid rounding mode %d", int(m))
	}
	return []byte(modenames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RoundingMode) UnmarshalText(text []byte) error {
	r, err := ParseRoundingMode(string(text))
	if err != nil {
		return err
	}
	*m = r
	return nil
}

// context returns a decimal context that rounds to prec significant digits
// using m.
func (m RoundingMode) context(prec uint32) *apd.Context {
	c := apd.BaseContext.WithPrecision(prec)
	c.Rounding = rounders[m]
	return c
}
