//go:build go1.18
// +build go1.18

package formula_test

import (
	"strings"
	"testing"

	"github.com/zephyrtronium/formula"
)

func FuzzCompute(f *testing.F) {
	f.Add("( 2 + 3 ) * 4")
	f.Add("1 / 0")
	f.Add(") ( + 1")
	f.Add("1e99999 * 1e99999")
	f.Fuzz(func(t *testing.T, s string) {
		formula.Default().Compute(formula.Tokens(strings.Fields(s)...)...)
	})
}

func FuzzComputeByFormula(f *testing.F) {
	f.Add("bonus = (grossProfit - base) * rate", 3)
	f.Add("（a+b）/c", 3)
	f.Add("a)(b", 2)
	f.Fuzz(func(t *testing.T, s string, n int) {
		if n < 0 || n > 64 {
			return
		}
		values := make([]formula.Number, n)
		for i := range values {
			values[i] = formula.Int(i)
		}
		formula.Default().ComputeByFormula(s, values...)
	})
}
