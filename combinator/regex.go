package combinator

import (
	"github.com/dlclark/regexp2"
)

type pattern struct {
	re *regexp2.Regexp
}

// Regexp matches the regular expression expr anchored at the current
// position, consuming the matched text. The expression is compiled
// once at construction; an invalid expression yields a parser that
// always fails with the compile error, keeping construction
// infallible like the other constructors.
func Regexp(expr string) *Parser {
	re, err := regexp2.Compile(expr, regexp2.RE2)
	if err != nil {
		return Fail("invalid pattern /" + expr + "/: " + err.Error())
	}
	return &Parser{op: opRegexp, lit: expr, rx: &pattern{re: re}}
}

func evalRegexp(in *input, st State, p *Parser) (State, Value, error) {
	m, err := p.rx.re.FindStringMatch(in.text[st.Off:])
	if err != nil || m == nil || m.Index != 0 {
		return st, Value{}, newError(in, st, "pattern /"+p.lit+"/")
	}
	matched := m.String()
	return st.advance(matched), TextValue(matched), nil
}
