package formula

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
	govalues "github.com/govalues/decimal"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FromShopspring converts a github.com/shopspring/decimal value. The result
// has the same value and scale.
func FromShopspring(d decimal.Decimal) Decimal {
	var c apd.BigInt
	c.SetMathBigInt(d.Coefficient())
	return wrap(apd.NewWithBigInt(&c, d.Exponent()))
}

// Shopspring converts d to a github.com/shopspring/decimal value with the same
// value and scale.
func (d Decimal) Shopspring() decimal.Decimal {
	v := d.dec()
	c := v.Coeff.MathBigInt()
	if v.Negative {
		c.Neg(c)
	}
	return decimal.NewFromBigInt(c, v.Exponent)
}

// FromGovalues converts a github.com/govalues/decimal value. The result has
// the same value and scale.
func FromGovalues(d govalues.Decimal) Decimal {
	var c apd.BigInt
	c.SetMathBigInt(new(big.Int).SetUint64(d.Coef()))
	v := apd.NewWithBigInt(&c, int32(-d.Scale()))
	v.Negative = d.IsNeg()
	return wrap(v)
}

// Govalues converts d to a github.com/govalues/decimal value with the same
// value and scale. It fails if d has more digits than govalues can hold.
func (d Decimal) Govalues() (govalues.Decimal, error) {
	scale := d.Scale()
	if scale < 0 {
		scale = 0
	}
	if scale > govalues.MaxScale {
		return govalues.Decimal{}, errors.Errorf("%v has more than %d fractional digits", d, govalues.MaxScale)
	}
	r, err := govalues.ParseExact(d.String(), scale)
	if err != nil {
		return govalues.Decimal{}, errors.Wrapf(err, "converting %v", d)
	}
	return r, nil
}
