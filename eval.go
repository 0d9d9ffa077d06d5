package formula

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// evaluation holds the state of a single call to Compute.
type evaluation struct {
	a    *Arithmetic
	nums []*apd.Decimal
	ops  []Operator
	// pos is the 1-based position of the token being evaluated.
	pos int
}

// push pushes an operand.
func (e *evaluation) push(x *apd.Decimal) {
	e.nums = append(e.nums, x)
}

// pop removes the top operand and returns it.
func (e *evaluation) pop() (*apd.Decimal, error) {
	if len(e.nums) == 0 {
		return nil, &IncompleteExpressionError{Index: e.pos, Reason: "missing operand"}
	}
	r := e.nums[len(e.nums)-1]
	e.nums = e.nums[:len(e.nums)-1]
	return r, nil
}

// top returns the top operator, or 0 if there is none.
func (e *evaluation) top() Operator {
	if len(e.ops) == 0 {
		return 0
	}
	return e.ops[len(e.ops)-1]
}

// popop removes the top operator and returns it. Panics if there is none.
func (e *evaluation) popop() Operator {
	r := e.ops[len(e.ops)-1]
	e.ops = e.ops[:len(e.ops)-1]
	return r
}

// apply computes x op y.
func (e *evaluation) apply(op Operator, x, y *apd.Decimal) (*apd.Decimal, error) {
	var f apdop
	switch op {
	case Add:
		f = exact.Add
	case Sub:
		f = exact.Sub
	case Mul:
		f = exact.Mul
	case Div:
		return e.a.quo(x, y)
	case LeftParen:
		return nil, &IncompleteExpressionError{Index: e.pos, Reason: "unmatched ("}
	case RightParen:
		return nil, &IncompleteExpressionError{Index: e.pos, Reason: "unmatched )"}
	default:
		// Unknown operators are never pushed.
		panic("formula: invalid operator on stack: " + strconv.Quote(op.String()))
	}
	r := new(apd.Decimal)
	if _, err := f(r, x, y); err != nil {
		return nil, errors.Wrapf(err, "evaluating %v", op)
	}
	return r, nil
}

// reduce pops two operands, applies op to them, and pushes the result.
func (e *evaluation) reduce(op Operator) error {
	y, err := e.pop()
	if err != nil {
		return err
	}
	x, err := e.pop()
	if err != nil {
		return err
	}
	r, err := e.apply(op, x, y)
	if err != nil {
		return err
	}
	e.push(r)
	return nil
}

// operator handles an operator token. Pending operators that bind at least as
// loosely as op are reduced first, stopping at an open parenthesis. A closing
// parenthesis then cancels the open parenthesis it reached.
func (e *evaluation) operator(op Operator) error {
	p, ok := op.priority()
	if !ok {
		return &OperatorError{Index: e.pos, Operator: op}
	}
	for len(e.ops) > 0 {
		top := e.top()
		if tp, _ := top.priority(); top == LeftParen || tp > p {
			break
		}
		e.popop()
		if err := e.reduce(top); err != nil {
			return err
		}
	}
	if op == RightParen && e.top() == LeftParen {
		e.popop()
		return nil
	}
	e.ops = append(e.ops, op)
	return nil
}

// next evaluates one token.
func (e *evaluation) next(tok Token) error {
	switch tok := tok.(type) {
	case Operator:
		return e.operator(tok)
	case Number:
		d, err := tok.decimal()
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Index = e.pos
			}
			e.a.log.Error().Err(err).Int("pos", e.pos).Msg("operand is not a number")
			return err
		}
		e.push(d.dec())
		return nil
	case nil:
		return &FormatError{Index: e.pos, Text: "<nil>"}
	default:
		panic("formula: unknown token type")
	}
}

// result folds the remaining stacks into a single value. After every token
// has been handled, the operators left bind strictly more tightly from bottom
// to top, so folding from the top yields the value of the expression.
func (e *evaluation) result() (*apd.Decimal, error) {
	r, err := e.pop()
	if err != nil {
		return nil, err
	}
	if len(e.nums) != len(e.ops) {
		reason := strconv.Itoa(len(e.nums)) + " operands left for " + strconv.Itoa(len(e.ops)) + " operators"
		return nil, &IncompleteExpressionError{Index: e.pos, Reason: reason}
	}
	for len(e.ops) > 0 {
		op := e.popop()
		x, err := e.pop()
		if err != nil {
			return nil, err
		}
		r, err = e.apply(op, x, r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Compute evaluates a sequence of tokens in infix order, e.g.
//
//	a.Compute(LeftParen, Float(8844.43), Sub, Int(5000), RightParen, Mul, Text("0.01"))
//
// Multiplication and division bind more tightly than addition and
// subtraction, and operators of equal binding associate to the left. Each
// division is rounded to the scale; the final result is rounded to the scale
// with trailing zeros stripped.
//
// If an operand is not a number, the error is a *FormatError. If the tokens do
// not form a complete expression, including when parentheses are unbalanced,
// the error is an *IncompleteExpressionError.
func (a *Arithmetic) Compute(tokens ...Token) (Decimal, error) {
	if ev := a.log.Debug(); ev.Enabled() {
		ev.Str("expr", describeAll(tokens)).Msg("computing")
	}
	e := evaluation{
		a:    a,
		nums: make([]*apd.Decimal, 0, len(tokens)/2+1),
		ops:  make([]Operator, 0, len(tokens)/2+1),
	}
	for i, tok := range tokens {
		e.pos = i + 1
		if err := e.next(tok); err != nil {
			return Decimal{}, err
		}
	}
	e.pos = len(tokens) + 1
	r, err := e.result()
	if err != nil {
		return Decimal{}, err
	}
	return a.finish(r)
}

// ComputeByFormula evaluates a formula such as "bonus = (grossProfit - base) *
// rate" by substituting values for its operands in order of appearance.
// Anything up to and including the first '=' is ignored, as is whitespace.
// Full-width parentheses are accepted.
//
// If the number of values differs from the number of operands in the formula,
// the error is an *ArityError. Otherwise the result is as for Compute.
func (a *Arithmetic) ComputeByFormula(formula string, values ...Number) (Decimal, error) {
	toks, err := lex(normalize(formula), values)
	if err != nil {
		return Decimal{}, err
	}
	return a.Compute(toks...)
}

// Eval is a shortcut to evaluate a formula with a new Arithmetic with the
// default scale and rounding.
func Eval(formula string, values ...Number) (Decimal, error) {
	return Default().ComputeByFormula(formula, values...)
}
