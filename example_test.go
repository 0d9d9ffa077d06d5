package formula_test

import (
	"fmt"

	"github.com/zephyrtronium/formula"
)

func Example() {
	a := formula.Default()
	r, err := a.ComputeByFormula("bonus = (grossProfit - base) * rate",
		formula.Float(8844.43), formula.Int(5000), formula.Text("0.01"))
	if err != nil {
		panic(err)
	}
	fmt.Println(r)

	r, err = a.Compute(formula.Tokens("(", "2", "+", "3", ")", "*", "4")...)
	if err != nil {
		panic(err)
	}
	fmt.Println(r)

	// Output:
	// 38.4443
	// 20
}

func ExampleArithmetic_Round() {
	modes := []formula.RoundingMode{
		formula.HalfUp,
		formula.HalfDown,
		formula.HalfEven,
		formula.Up,
		formula.Down,
		formula.Ceiling,
		formula.Floor,
		formula.Unnecessary,
	}
	for _, m := range modes {
		a := formula.New(formula.Scale(0), formula.Rounding(m))
		r, err := a.Round(formula.Text("-2.5"))
		fmt.Printf("%-11v %v %v\n", m, r, err)
	}

	// Output:
	// half_up     -3 <nil>
	// half_down   -2 <nil>
	// half_even   -2 <nil>
	// up          -3 <nil>
	// down        -2 <nil>
	// ceiling     -2 <nil>
	// floor       -3 <nil>
	// unnecessary 0 rounding necessary: -2.5 has more than 0 fractional digits
}

func ExampleArithmetic_DivTry() {
	a := formula.New(formula.Scale(2), formula.Rounding(formula.HalfEven))
	fmt.Println(a.DivTry(formula.Int(1), formula.Int(8)))
	fmt.Println(a.DivTry(formula.Int(1), formula.Int(0)))

	// Output:
	// 0.12 true
	// 0 false
}

func ExampleEval() {
	r, err := formula.Eval("average = (a + b + c) / n",
		formula.Int(10), formula.Int(20), formula.Int(25), formula.Int(3))
	fmt.Println(r, err)

	// Output:
	// 18.3333 <nil>
}
