package formula

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// Decimal is an immutable arbitrary-precision decimal number. It is never
// rounded implicitly; rounding happens only in operations of an Arithmetic.
// The zero value is 0.
type Decimal struct {
	// v is never modified once a Decimal holds it. nil means 0.
	v *apd.Decimal
}

// apdzero is the value of a zero Decimal. It must not be modified.
var apdzero apd.Decimal

// exact is a context that performs addition, subtraction, and multiplication
// without rounding.
var exact = apd.BaseContext.WithPrecision(0)

var errNotFinite = errors.New("not a finite number")

// wrap takes ownership of v.
func wrap(v *apd.Decimal) Decimal {
	if v.IsZero() {
		// No negative zeros.
		v.Negative = false
	}
	return Decimal{v: v}
}

// dec returns the decimal's value. The result must not be modified.
func (d Decimal) dec() *apd.Decimal {
	if d.v == nil {
		return &apdzero
	}
	return d.v
}

// NewDecimal returns the decimal coef × 10^-scale.
func NewDecimal(coef int64, scale int) Decimal {
	return wrap(apd.New(coef, int32(-scale)))
}

// Parse parses a decimal from text such as "8844.43", "-0.01", or "1.5E+3".
// The scale of the result is the number of fractional digits in the text.
func Parse(s string) (Decimal, error) {
	v, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, &FormatError{Text: s, Err: err}
	}
	if v.Form != apd.Finite {
		return Decimal{}, &FormatError{Text: s, Err: errNotFinite}
	}
	return wrap(v), nil
}

// MustParse is like Parse but panics if s is not a valid decimal.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the decimal without an exponent.
func (d Decimal) String() string {
	return d.dec().Text('f')
}

// Scale returns the number of digits after the decimal point. It is negative
// when trailing zeros of an integer have been stripped, e.g. -2 for 100 after
// rounding.
func (d Decimal) Scale() int {
	return int(-d.dec().Exponent)
}

// Sign returns -1, 0, or +1 according to the sign of d.
func (d Decimal) Sign() int {
	return d.dec().Sign()
}

// IsZero returns whether d is zero.
func (d Decimal) IsZero() bool {
	return d.dec().IsZero()
}

// Cmp compares the numeric values of d and e, returning -1, 0, or +1. Scale
// does not matter: 1.0 and 1.00 compare equal.
func (d Decimal) Cmp(e Decimal) int {
	return d.dec().Cmp(e.dec())
}

// Equal returns whether d and e have the same value and the same scale. 1.0
// and 1.00 are not Equal.
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0 && d.dec().Exponent == e.dec().Exponent
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	return wrap(new(apd.Decimal).Neg(d.dec()))
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	r, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = r
	return nil
}

// quantize rounds x to scale fractional digits.
func quantize(x *apd.Decimal, scale int32, mode RoundingMode) (*apd.Decimal, error) {
	y := x
	if lost := -int64(scale) - int64(x.Exponent); lost > x.NumDigits() && !x.IsZero() {
		// Every digit is below a tenth of the last place kept, so only the
		// sign affects the result. Quantize would drop such a value to zero
		// under every mode.
		y = apd.New(1, -scale-1)
		y.Negative = x.Negative
	}
	// The rounded coefficient has at most the digits of y, plus the zeros
	// appended to reach the scale, plus one for a carry.
	p := y.NumDigits() + 1
	if up := int64(y.Exponent) + int64(scale); up > 0 {
		p += up
	}
	r := new(apd.Decimal)
	res, err := mode.context(uint32(p)).Quantize(r, y, -scale)
	if err != nil {
		return nil, errors.Wrap(err, "rounding")
	}
	if mode == Unnecessary && res.Inexact() {
		return nil, &RoundingError{X: wrap(new(apd.Decimal).Set(x)), Scale: int(scale)}
	}
	return r, nil
}

// quo computes x/y rounded to scale fractional digits. y must not be zero.
func quo(x, y *apd.Decimal, scale int32, mode RoundingMode) (*apd.Decimal, error) {
	// |x/y| < 10^e. Divide to two digits past the scale, rounding toward
	// 0 or 5 so that the second rounding below sees any inexactness.
	e := x.NumDigits() + int64(x.Exponent) - y.NumDigits() - int64(y.Exponent) + 1
	p := e + int64(scale) + 3
	if p < 3 {
		p = 3
	}
	c := apd.BaseContext.WithPrecision(uint32(p))
	c.Rounding = apd.Round05Up
	q := new(apd.Decimal)
	if _, err := c.Quo(q, x, y); err != nil {
		return nil, errors.Wrap(err, "dividing")
	}
	return quantize(q, scale, mode)
}

// strip removes trailing zeros from x.
func strip(x *apd.Decimal) *apd.Decimal {
	if x.IsZero() {
		return apd.New(0, 0)
	}
	r, _ := new(apd.Decimal).Reduce(x)
	return r
}
