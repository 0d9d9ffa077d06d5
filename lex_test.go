package formula

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{" \t \r\n ", ""},
		{"a+b", "a+b"},
		{"bonus = (grossProfit - base) * rate", "(grossProfit-base)*rate"},
		{"x = a = b", "a=b"},
		{"=", ""},
		{"（a + b）* c", "(a+b)*c"},
		{"a　+ b", "a+b"},
	}
	for _, c := range cases {
		if got := normalize(c.src); got != c.want {
			t.Errorf("normalizing %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"(a-b)*c", "a b c"},
		{"()", ""},
		{"a++b", "a b"},
		{"1.5*x2", "1.5 x2"},
		{"総額-割引", "総額 割引"},
	}
	for _, c := range cases {
		if got := strings.Join(placeholders(c.src), " "); got != c.want {
			t.Errorf("placeholders of %q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		values []Number
		tokens []Token
	}{
		{"", nil, []Token{}},
		{"a", []Number{Int(1)}, []Token{Int(1)}},
		{"(a-b)*c", []Number{Int(1), Text("2"), Float(3)}, []Token{LeftParen, Int(1), Sub, Text("2"), RightParen, Mul, Float(3)}},
		{"()", nil, []Token{LeftParen, RightParen}},
		{"a++b", []Number{Int(1), Int(2)}, []Token{Int(1), Add, Add, Int(2)}},
		{"x/y", []Number{Int(1), Int(2)}, []Token{Int(1), Div, Int(2)}},
		{"総額-割引", []Number{Int(1), Int(2)}, []Token{Int(1), Sub, Int(2)}},
	}
	for _, c := range cases {
		got, err := lex(c.src, c.values)
		if err != nil {
			t.Errorf("lexing %q: unexpected error %v", c.src, err)
			continue
		}
		if !reflect.DeepEqual(got, c.tokens) {
			t.Errorf("lexing %q: want %v, got %v", c.src, c.tokens, got)
		}
	}
}

func TestLexArity(t *testing.T) {
	cases := []struct {
		src    string
		values []Number
		want   int
	}{
		{"", []Number{Int(1)}, 0},
		{"a", nil, 1},
		{"a+b", []Number{Int(1)}, 2},
		{"a", []Number{Int(1), Int(2)}, 1},
	}
	for _, c := range cases {
		_, err := lex(c.src, c.values)
		var ae *ArityError
		if !errors.As(err, &ae) {
			t.Errorf("lexing %q: %#v is not *ArityError", c.src, err)
			continue
		}
		if ae.Want != c.want || ae.Got != len(c.values) {
			t.Errorf("lexing %q: want %d and %d, got %d and %d", c.src, c.want, len(c.values), ae.Want, ae.Got)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("(", "1", "+", "-1", "）", "", "/", "**")
	want := []Token{LeftParen, Text("1"), Add, Text("-1"), Text("）"), Text(""), Div, Text("**")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestPriority(t *testing.T) {
	// Lower binds more tightly among real operators.
	if p, _ := Mul.priority(); p >= 4 {
		t.Errorf("* has priority %d", p)
	}
	for _, op := range []Operator{Add, Sub, Mul, Div} {
		p, ok := op.priority()
		if !ok {
			t.Errorf("%v has no priority", op)
		}
		if lp, _ := LeftParen.priority(); lp >= p {
			t.Errorf("( doesn't have the lowest priority: %d vs %v %d", lp, op, p)
		}
		if rp, _ := RightParen.priority(); rp <= p {
			t.Errorf(") doesn't have the highest priority: %d vs %v %d", rp, op, p)
		}
	}
	for _, op := range []Operator{'%', '^', 0, '='} {
		if _, ok := op.priority(); ok {
			t.Errorf("%q has a priority", op)
		}
	}
}
