// Package formula implements exact decimal arithmetic with controlled rounding
// and an evaluator for simple infix formulas.
//
// An Arithmetic holds a scale and a rounding mode. Its Add, Sub, and Mul
// compute exactly and round once at the end; Div rounds every quotient.
// Results have trailing zeros stripped, so 2.5000 is reported as 2.5.
//
// Formulas are written with placeholders whose values are supplied in order of
// appearance. The placeholder names only serve as documentation:
//
//	bonus = (grossProfit - base) * rate
//
// with values 8844.43, 5000, and 0.01 evaluates to 38.4443. The operators are
// + - * / and parentheses; * and / bind more tightly than + and -, and
// operators of equal binding associate to the left. There are no unary
// operators, so a negative value must be supplied as a value.
//
package formula
