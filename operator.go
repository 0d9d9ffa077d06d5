package formula

// Operator is an operator or parenthesis in an expression.
type Operator byte

const (
	Add        Operator = '+'
	Sub        Operator = '-'
	Mul        Operator = '*'
	Div        Operator = '/'
	LeftParen  Operator = '('
	RightParen Operator = ')'
)

// Operators contains the symbols of every Operator.
const Operators = "+-*/()"

// priority gets the reduction priority of an operator. A pending operator on
// the stack is reduced before pushing op when its priority is no greater than
// op's. ok is false if op is not a known operator.
//
// LeftParen is never reduced, so its value only needs to be the lowest.
// RightParen is higher than any real operator so that it forces reduction of
// everything back to the matching LeftParen.
func (op Operator) priority() (p int, ok bool) {
	switch op {
	case Add, Sub:
		return 4, true
	case Mul, Div:
		return 3, true
	case LeftParen:
		return 1, true
	case RightParen:
		return 16, true
	default:
		return 0, false
	}
}

func (op Operator) String() string {
	return string(rune(op))
}
