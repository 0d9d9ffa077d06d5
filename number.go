package formula

import (
	"math"
	"strconv"
	"strings"
)

// Token is an element of an expression: an Operator or a Number. The set of
// token types is closed.
type Token interface {
	isToken()
}

// Number is a value that can be used as an operand. Its implementations are
// Text, Int, Float, and Decimal.
type Number interface {
	Token
	// decimal converts the number. This happens exactly once per use.
	decimal() (Decimal, error)
}

// Text is a number in decimal text form, e.g. "8844.43" or "-1.5E+2".
type Text string

// Int is an integer.
type Int int64

// Float is a binary floating-point number. It converts to the decimal with the
// fewest digits that rounds back to the same float64, so Float(0.01) is
// exactly 0.01.
type Float float64

func (Text) isToken()     {}
func (Int) isToken()      {}
func (Float) isToken()    {}
func (Decimal) isToken()  {}
func (Operator) isToken() {}

func (t Text) decimal() (Decimal, error) {
	return Parse(string(t))
}

func (n Int) decimal() (Decimal, error) {
	return NewDecimal(int64(n), 0), nil
}

func (f Float) decimal() (Decimal, error) {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return Decimal{}, &FormatError{Text: s, Err: errNotFinite}
	}
	return Parse(s)
}

func (d Decimal) decimal() (Decimal, error) {
	return d, nil
}

// decimalOf converts a number that may be nil.
func decimalOf(n Number) (Decimal, error) {
	if n == nil {
		return Decimal{}, &FormatError{Text: "<nil>"}
	}
	return n.decimal()
}

// Tokens classifies strings as tokens. A string that is exactly one of the
// ASCII operator symbols + - * / ( ) becomes that Operator; any other string
// becomes Text.
func Tokens(s ...string) []Token {
	toks := make([]Token, len(s))
	for i, t := range s {
		if len(t) == 1 && strings.IndexByte(Operators, t[0]) >= 0 {
			toks[i] = Operator(t[0])
			continue
		}
		toks[i] = Text(t)
	}
	return toks
}

// describe formats a token for logs.
func describe(tok Token) string {
	switch tok := tok.(type) {
	case nil:
		return "<nil>"
	case Operator:
		return tok.String()
	case Text:
		return string(tok)
	case Int:
		return strconv.FormatInt(int64(tok), 10)
	case Float:
		return strconv.FormatFloat(float64(tok), 'g', -1, 64)
	case Decimal:
		return tok.String()
	default:
		panic("formula: unknown token type")
	}
}

func describeAll(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(describe(tok))
	}
	return b.String()
}
