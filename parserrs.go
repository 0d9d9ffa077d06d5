package formula

import "strconv"

// FormatError is an error indicating an operand that is not a valid decimal
// number. It implements InputError.
type FormatError struct {
	// Index is the 1-based position of the operand in the token sequence, or
	// 0 if the text was not part of an expression.
	Index int
	// Text is the operand text that failed to parse.
	Text string
	// Err is the underlying parse error, if any.
	Err error
}

func (err *FormatError) Error() string {
	msg := "invalid number " + strconv.Quote(err.Text)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.Index == 0 {
		return msg
	}
	return errpos(err.Index, msg)
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

func (err *FormatError) Pos() int {
	return err.Index
}

// OperatorError is an error indicating an operator token that the evaluator
// does not understand. It implements InputError.
type OperatorError struct {
	// Index is the 1-based position of the operator in the token sequence.
	Index int
	// Operator is the operator that was not understood.
	Operator Operator
}

func (err *OperatorError) Error() string {
	return errpos(err.Index, "unknown operator "+strconv.QuoteRune(rune(err.Operator)))
}

func (err *OperatorError) Pos() int {
	return err.Index
}

// IncompleteExpressionError is an error indicating an expression that cannot
// be reduced to a single value: a missing operand, an extra operand, or an
// unmatched parenthesis. It implements InputError.
type IncompleteExpressionError struct {
	// Index is the 1-based position of the token at which the problem was
	// found. It is one past the last token if the problem was found after
	// the whole sequence was consumed.
	Index int
	// Reason describes what was missing or left over.
	Reason string
}

func (err *IncompleteExpressionError) Error() string {
	return errpos(err.Index, "incomplete expression: "+err.Reason)
}

func (err *IncompleteExpressionError) Pos() int {
	return err.Index
}

// ArityError is an error indicating that a formula has a different number of
// operand placeholders than the number of values supplied for it.
type ArityError struct {
	// Want is the number of placeholders in the formula.
	Want int
	// Got is the number of values supplied.
	Got int
}

func (err *ArityError) Error() string {
	return "formula has " + strconv.Itoa(err.Want) + " operands but " + strconv.Itoa(err.Got) + " values were given"
}

// DivisionByZeroError is an error indicating a division by exactly zero.
type DivisionByZeroError struct {
	// Dividend is the value that was to be divided.
	Dividend Decimal
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + err.Dividend.String() + " / 0"
}

// RoundingError is an error returned under the Unnecessary rounding mode when
// a value cannot be represented at the configured scale without discarding
// nonzero digits.
type RoundingError struct {
	// X is the value that needed rounding.
	X Decimal
	// Scale is the scale it was to be represented with.
	Scale int
}

func (err *RoundingError) Error() string {
	return "rounding necessary: " + err.X.String() + " has more than " + strconv.Itoa(err.Scale) + " fractional digits"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// an invalid token in an expression implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based position in the token sequence of the token
	// that caused the error.
	Pos() int
}

var (
	_ InputError = (*FormatError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*IncompleteExpressionError)(nil)
)
