package formula

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// widebrackets replaces full-width parentheses with ASCII ones.
var widebrackets = strings.NewReplacer("（", "(", "）", ")")

// normalize discards a leading "label =", converts full-width parentheses, and
// removes whitespace.
func normalize(formula string) string {
	if k := strings.IndexByte(formula, '='); k >= 0 {
		formula = formula[k+1:]
	}
	formula = widebrackets.Replace(formula)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, formula)
}

func isOperator(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(Operators, byte(r)) >= 0
}

// placeholders splits a normalized formula into the names of its operands, in
// order.
func placeholders(formula string) []string {
	return strings.FieldsFunc(formula, isOperator)
}

// lex converts a normalized formula to tokens, substituting values for the
// operand placeholders in order.
func lex(formula string, values []Number) ([]Token, error) {
	names := placeholders(formula)
	if len(names) != len(values) {
		return nil, &ArityError{Want: len(names), Got: len(values)}
	}
	toks := make([]Token, 0, 2*len(names)+1)
	k := 0
	for formula != "" {
		r, sz := utf8.DecodeRuneInString(formula)
		if isOperator(r) {
			toks = append(toks, Operator(r))
			formula = formula[sz:]
			continue
		}
		// names came from the same string, so names[k] is a prefix here.
		toks = append(toks, values[k])
		formula = formula[len(names[k]):]
		k++
	}
	return toks, nil
}
