package formula

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultScale is the scale used when no Scale option is given.
const DefaultScale = 4

// MaxScale is the largest scale an Arithmetic accepts.
const MaxScale = 1 << 16

// Arithmetic performs decimal arithmetic whose results are rounded to a fixed
// scale with a fixed rounding mode. An Arithmetic cannot be modified after it
// is created, so it is safe to use concurrently.
type Arithmetic struct {
	scale int32
	mode  RoundingMode
	log   zerolog.Logger
}

// Option is an option used when creating an Arithmetic.
type Option interface {
	arithOption()
}

type (
	scaleopt uint
	roundopt RoundingMode
	logopt   struct {
		l zerolog.Logger
	}
)

func (scaleopt) arithOption() {}
func (roundopt) arithOption() {}
func (logopt) arithOption()   {}

// Scale sets the number of fractional digits kept in results.
func Scale(n uint) Option {
	return scaleopt(n)
}

// Rounding sets the rounding mode used to reach the scale.
func Rounding(mode RoundingMode) Option {
	return roundopt(mode)
}

// Logger sets the logger used to trace evaluations. The default discards
// everything.
func Logger(l zerolog.Logger) Option {
	return logopt{l}
}

// New creates an Arithmetic. Without options, the scale is DefaultScale and
// the rounding mode is HalfUp. Later options override earlier ones. New panics
// if the scale exceeds MaxScale or the rounding mode is invalid.
func New(opts ...Option) *Arithmetic {
	a := Arithmetic{scale: DefaultScale, mode: HalfUp, log: zerolog.Nop()}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case scaleopt:
			if opt > MaxScale {
				panic("formula: scale too large: " + strconv.FormatUint(uint64(opt), 10))
			}
			a.scale = int32(opt)
		case roundopt:
			if !RoundingMode(opt).valid() {
				panic("formula: invalid rounding mode " + RoundingMode(opt).String())
			}
			a.mode = RoundingMode(opt)
		case logopt:
			a.log = opt.l
		default:
			panic("formula: unknown option type")
		}
	}
	return &a
}

// Default creates an Arithmetic with scale 4 and HalfUp rounding.
func Default() *Arithmetic {
	return New()
}

// Scale returns the number of fractional digits kept in results.
func (a *Arithmetic) Scale() int {
	return int(a.scale)
}

// Rounding returns the rounding mode.
func (a *Arithmetic) Rounding() RoundingMode {
	return a.mode
}

type apdop func(d, x, y *apd.Decimal) (apd.Condition, error)

// fold applies op left to right across its operands without rounding.
func fold(op apdop, x, y Number, more []Number) (*apd.Decimal, error) {
	l, err := decimalOf(x)
	if err != nil {
		return nil, err
	}
	r := l.dec()
	for _, n := range append([]Number{y}, more...) {
		e, err := decimalOf(n)
		if err != nil {
			return nil, err
		}
		t := new(apd.Decimal)
		if _, err := op(t, r, e.dec()); err != nil {
			return nil, errors.Wrap(err, "exact arithmetic")
		}
		r = t
	}
	return r, nil
}

// finish rounds x to the scale and strips trailing zeros.
func (a *Arithmetic) finish(x *apd.Decimal) (Decimal, error) {
	r, err := quantize(x, a.scale, a.mode)
	if err != nil {
		return Decimal{}, err
	}
	return wrap(strip(r)), nil
}

// Add returns x + y + more..., rounded to the scale with trailing zeros
// stripped.
func (a *Arithmetic) Add(x, y Number, more ...Number) (Decimal, error) {
	r, err := fold(exact.Add, x, y, more)
	if err != nil {
		return Decimal{}, err
	}
	return a.finish(r)
}

// Sub returns x - y - more..., rounded to the scale with trailing zeros
// stripped.
func (a *Arithmetic) Sub(x, y Number, more ...Number) (Decimal, error) {
	r, err := fold(exact.Sub, x, y, more)
	if err != nil {
		return Decimal{}, err
	}
	return a.finish(r)
}

// Mul returns x × y × more..., rounded to the scale with trailing zeros
// stripped.
func (a *Arithmetic) Mul(x, y Number, more ...Number) (Decimal, error) {
	r, err := fold(exact.Mul, x, y, more)
	if err != nil {
		return Decimal{}, err
	}
	return a.finish(r)
}

// Div returns x ÷ y ÷ more..., where each quotient is rounded to the scale.
// Trailing zeros of the result are stripped. If any divisor is zero, the
// error is a *DivisionByZeroError.
func (a *Arithmetic) Div(x, y Number, more ...Number) (Decimal, error) {
	l, err := decimalOf(x)
	if err != nil {
		return Decimal{}, err
	}
	r := l.dec()
	for _, n := range append([]Number{y}, more...) {
		e, err := decimalOf(n)
		if err != nil {
			return Decimal{}, err
		}
		r, err = a.quo(r, e.dec())
		if err != nil {
			return Decimal{}, err
		}
	}
	return wrap(strip(r)), nil
}

// quo divides with the configured scale and rounding.
func (a *Arithmetic) quo(x, y *apd.Decimal) (*apd.Decimal, error) {
	if y.IsZero() {
		return nil, &DivisionByZeroError{Dividend: wrap(new(apd.Decimal).Set(x))}
	}
	return quo(x, y, a.scale, a.mode)
}

// AddExact returns x + y without rounding.
func (a *Arithmetic) AddExact(x, y Number) (Decimal, error) {
	r, err := fold(exact.Add, x, y, nil)
	if err != nil {
		return Decimal{}, err
	}
	return wrap(r), nil
}

// SubExact returns x - y without rounding.
func (a *Arithmetic) SubExact(x, y Number) (Decimal, error) {
	r, err := fold(exact.Sub, x, y, nil)
	if err != nil {
		return Decimal{}, err
	}
	return wrap(r), nil
}

// MulExact returns x × y without rounding.
func (a *Arithmetic) MulExact(x, y Number) (Decimal, error) {
	r, err := fold(exact.Mul, x, y, nil)
	if err != nil {
		return Decimal{}, err
	}
	return wrap(r), nil
}

// DivTry is like Div with a single divisor, but reports any failure only as
// ok being false.
func (a *Arithmetic) DivTry(x, y Number) (Decimal, bool) {
	q, err := a.Div(x, y)
	if err != nil {
		a.log.Debug().Err(err).Msg("division failed")
		return Decimal{}, false
	}
	return q, true
}

// DivWithJudge returns x ÷ y like Div, except that it returns fallback when y
// is zero.
func (a *Arithmetic) DivWithJudge(x, y Number, fallback Decimal) (Decimal, error) {
	d, err := decimalOf(y)
	if err != nil {
		return Decimal{}, err
	}
	if d.IsZero() {
		return fallback, nil
	}
	return a.Div(x, d)
}

// Compare compares the values of x and y, returning -1, 0, or +1. Numbers
// with equal values but different scales compare equal.
func (a *Arithmetic) Compare(x, y Number) (int, error) {
	l, err := decimalOf(x)
	if err != nil {
		return 0, err
	}
	r, err := decimalOf(y)
	if err != nil {
		return 0, err
	}
	return l.Cmp(r), nil
}

// Equal returns whether x and y have the same value and the same scale.
func (a *Arithmetic) Equal(x, y Number) (bool, error) {
	l, err := decimalOf(x)
	if err != nil {
		return false, err
	}
	r, err := decimalOf(y)
	if err != nil {
		return false, err
	}
	return l.Equal(r), nil
}

// Round rounds x to the scale and strips trailing zeros.
func (a *Arithmetic) Round(x Number) (Decimal, error) {
	d, err := decimalOf(x)
	if err != nil {
		return Decimal{}, err
	}
	return a.finish(d.dec())
}

// Format is Round for a decimal that may be nil. The result is nil exactly
// when v is nil.
func (a *Arithmetic) Format(v *Decimal) (*Decimal, error) {
	if v == nil {
		return nil, nil
	}
	r, err := a.Round(*v)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
