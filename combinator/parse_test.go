package combinator

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseCalc(t *testing.T) {
	// expr = digits '+' expr | digits, folded to the numeric sum.
	expr := New("expr")
	expr.Define(Or(
		Seq(addFold, Int(), Char('+'), expr),
		Int()))

	v, err := Parse("calc", "1+2", expr)
	if err != nil {
		t.Fatal(err)
	}
	n, err := v.Int()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d, want 3", n)
	}
}

func TestParseQuotedString(t *testing.T) {
	// '"' noneof('"')* '"' keeping only the body.
	p := Seq(Pick(1),
		Char('"'),
		Many(Concat, NoneOf(`"`)),
		Char('"'))

	v, err := Parse("test", `"ab"`, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := v.Text()
	if err != nil {
		t.Fatal(err)
	}
	if s != "ab" {
		t.Errorf("got %q, want %q", s, "ab")
	}
}

func TestParseEmptyInputError(t *testing.T) {
	_, err := Parse("test", "", Char('a'))
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T", err)
	}
	if perr.State.Row != 0 || perr.State.Col != 0 {
		t.Errorf("position = %v, want 0:0", perr.State)
	}
	if len(perr.Expected) != 1 || perr.Expected[0] != "a" {
		t.Errorf("expected-set = %v, want [a]", perr.Expected)
	}
}

func TestErrorRendering(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parser *Parser
		want   string
	}{
		{
			"expected at char",
			"x",
			Char('a'),
			`test 1:1: expected a at 'x'`,
		},
		{
			"expected at end of input",
			"",
			Char('a'),
			"test 1:1: expected a at end of input",
		},
		{
			"expected list",
			"x",
			Or(Char('a'), Char('b'), Char('c')),
			`test 1:1: expected a, b or c at 'x'`,
		},
		{
			"literal failure",
			"x",
			Fail("custom message"),
			"test 1:1: custom message",
		},
		{
			"position after newline",
			"ab\ncd",
			Seq(nil, String("ab\nc"), Char('x')),
			`test 2:2: expected x at 'd'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test", tt.input, tt.parser)
			if err == nil {
				t.Fatal("expected failure")
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestParseLeavesTrailingInput(t *testing.T) {
	// Without an explicit End the parser may succeed with input left
	// over.
	v, err := Parse("test", "abREST", String("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := v.Text(); s != "ab" {
		t.Errorf("got %v", v)
	}

	_, err = Parse("test", "abREST", Seq(First, String("ab"), End()))
	if err == nil {
		t.Error("End did not reject trailing input")
	}
}

func TestParseComplete(t *testing.T) {
	p := String("ab")

	if _, err := Parse("test", "ab", p, Complete()); err != nil {
		t.Errorf("full consumption rejected: %v", err)
	}

	_, err := Parse("test", "abREST", p, Complete())
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("got %T, want *Error", err)
	}
	// The failure points at where the parser stopped, not at 0.
	if perr.State.Off != 2 {
		t.Errorf("failure offset = %d, want 2", perr.State.Off)
	}
	if !strings.Contains(perr.Error(), "end of input") {
		t.Errorf("message %q does not mention end of input", perr.Error())
	}
}

func TestParseRoundTrip(t *testing.T) {
	// Parsing the rendered result of a literal-string parse through
	// the same parser reproduces an equal value.
	p := String("hello")
	v1, err := Parse("test", "hello", p)
	if err != nil {
		t.Fatal(err)
	}
	rendered, err := v1.Text()
	if err != nil {
		t.Fatal(err)
	}
	v2, err := Parse("test", rendered, p)
	if err != nil {
		t.Fatal(err)
	}
	if s1, _ := v1.Text(); s1 != rendered {
		t.Errorf("render changed the value: %q vs %q", s1, rendered)
	}
	if s2, _ := v2.Text(); s2 != rendered {
		t.Errorf("round trip changed the value: %q vs %q", s2, rendered)
	}
}

func TestParseExpressionTree(t *testing.T) {
	// term = digits | '(' expr ')'
	// expr = term '+' expr | term
	// folded to the prefix form "(+ lhs rhs)".
	expr := New("expr")
	term := New("term")
	term.Define(Or(
		Digits(),
		Seq(Pick(1), Char('('), expr, Char(')'))))
	expr.Define(Or(
		Seq(prefixFold, term, token("+"), expr),
		term))

	tests := []struct {
		input string
		want  string
	}{
		{"4", "4"},
		{"4+2", "(+ 4 2)"},
		{"(4 + 2)", "(+ 4 2)"},
		{"1+(2+3)", "(+ 1 (+ 2 3))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse("calc", tt.input, expr)
			if err != nil {
				t.Fatal(err)
			}
			s, err := v.Text()
			if err != nil {
				t.Fatal(err)
			}
			if s != tt.want {
				t.Errorf("got %q, want %q", s, tt.want)
			}
		})
	}
}

// token matches lit with surrounding whitespace, yielding lit.
func token(lit string) *Parser {
	return Seq(Pick(1), Whitespaces(), String(lit), Whitespaces())
}

// prefixFold renders [lhs, op, rhs] as "(op lhs rhs)".
func prefixFold(vals []Value) (Value, error) {
	lhs, err := vals[0].Text()
	if err != nil {
		return Value{}, err
	}
	op, err := vals[1].Text()
	if err != nil {
		return Value{}, err
	}
	rhs, err := vals[2].Text()
	if err != nil {
		return Value{}, err
	}
	return TextValue(fmt.Sprintf("(%s %s %s)", op, lhs, rhs)), nil
}

func TestSharedParserAcrossParses(t *testing.T) {
	digits := Digits()
	p := SepBy1(Collect, digits, Char(','))
	for _, in := range []string{"1,2", "3", "4,5,6"} {
		if _, err := Parse("test", in, p); err != nil {
			t.Errorf("%s: %v", in, err)
		}
	}
	// The same parser value is reusable concurrently on independent
	// inputs.
	done := make(chan error, 2)
	go func() { _, err := Parse("a", "1,2,3", p); done <- err }()
	go func() { _, err := Parse("b", "9", p); done <- err }()
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}

func TestParseExpressionTreeError(t *testing.T) {
	expr := New("expr")
	expr.Define(Or(
		Seq(prefixFold, Digits(), token("+"), expr),
		Digits()))
	_, err := Parse("calc", "1+", expr)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "calc ") {
		t.Errorf("source name missing from %q", err.Error())
	}
}

func TestParseExpressionWithWhitespaceTerm(t *testing.T) {
	// "(4 + 2)": whitespace handled inside the parenthesized term.
	term := New("term")
	expr := New("expr")
	pad := Whitespaces()
	term.Define(Or(
		Digits(),
		Seq(Pick(2), Char('('), pad, expr, pad, Char(')'))))
	expr.Define(Or(
		Seq(prefixFold, term, token("+"), expr),
		term))

	v, err := Parse("calc", "(4 + 2)", expr)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := v.Text(); s != "(+ 4 2)" {
		t.Errorf("got %q, want %q", s, "(+ 4 2)")
	}
}
