package combinator

import (
	"fmt"
	"strconv"
	"strings"
)

type op int

const (
	opUndefined op = iota

	// Primitives
	opAny
	opChar
	opRange
	opOneOf
	opNoneOf
	opSatisfy
	opString
	opPass
	opFail
	opLift
	opLiftVal
	opAnchor
	opProbe
	opStart
	opEnd
	opRegexp

	// Combinators
	opSeq
	opOr
	opMany
	opMany1
	opCount
	opSepBy
	opSepBy1

	// AST annotation
	opTag
	opRoot
)

// Parser is an immutable description of a parsing strategy. Parsers are
// side-effect-free values: once constructed they may be shared across
// recursive self-references and across any number of concurrent parse
// calls. The only mutation permitted is Define on a placeholder created
// by New, which must happen before the parser is first run.
type Parser struct {
	name string
	op   op

	// primitive payloads
	char   rune
	lo, hi rune
	set    string
	lit    string
	pred   func(rune) bool
	anchor func(prev, next rune) bool
	lift   func() Value
	val    Value
	rx     *pattern

	// combinator payloads
	kids  []*Parser
	fold  Fold
	count int
}

// New allocates a named placeholder for a rule that will be filled in
// later with Define. This is how mutually recursive grammars are built:
// allocate the handles first, then define each in terms of the others.
func New(name string) *Parser {
	return &Parser{name: name, op: opUndefined}
}

// Define fills in a placeholder created by New with the given
// definition and returns it. The placeholder keeps its name. Running a
// parser that still contains undefined placeholders fails the parse.
func (p *Parser) Define(def *Parser) *Parser {
	name := p.name
	*p = *def
	p.name = name
	return p
}

// Any matches any single character; it fails only at end of input.
func Any() *Parser { return &Parser{op: opAny} }

// Char matches exactly the character c.
func Char(c rune) *Parser { return &Parser{op: opChar, char: c} }

// Range matches a character whose codepoint lies in [lo, hi].
func Range(lo, hi rune) *Parser { return &Parser{op: opRange, lo: lo, hi: hi} }

// OneOf matches any character contained in set.
func OneOf(set string) *Parser { return &Parser{op: opOneOf, set: set} }

// NoneOf matches any character not contained in set. It fails at end
// of input.
func NoneOf(set string) *Parser { return &Parser{op: opNoneOf, set: set} }

// Satisfy matches a character for which pred returns true.
func Satisfy(pred func(rune) bool) *Parser { return &Parser{op: opSatisfy, pred: pred} }

// String matches the literal string s. The match is atomic: either all
// of s is consumed, or nothing is.
func String(s string) *Parser { return &Parser{op: opString, lit: s} }

// Pass consumes nothing and always succeeds with the unit value.
func Pass() *Parser { return &Parser{op: opPass} }

// Fail consumes nothing and always fails with the literal message msg.
func Fail(msg string) *Parser { return &Parser{op: opFail, lit: msg} }

// Lift consumes nothing and succeeds with the result of calling f,
// letting a grammar inject a computed value without matching input.
func Lift(f func() Value) *Parser { return &Parser{op: opLift, lift: f} }

// LiftVal consumes nothing and succeeds with v.
func LiftVal(v Value) *Parser { return &Parser{op: opLiftVal, val: v} }

// Anchor consumes nothing and succeeds when f approves of the
// characters around the cursor; either side is 0 at the edge of the
// input. Used for zero-width assertions such as word boundaries.
func Anchor(f func(prev, next rune) bool) *Parser { return &Parser{op: opAnchor, anchor: f} }

// Probe consumes nothing and succeeds with the current State as its
// value, for embedding positions into results.
func Probe() *Parser { return &Parser{op: opProbe} }

// Start consumes nothing and succeeds only at offset 0.
func Start() *Parser { return &Parser{op: opStart} }

// End consumes nothing and succeeds only at end of input.
func End() *Parser { return &Parser{op: opEnd} }

// Seq runs the given parsers in order and folds their values. A
// failure anywhere leaves no partial consumption visible: the caller
// resumes from the position before the sequence.
func Seq(fold Fold, parsers ...*Parser) *Parser {
	return &Parser{op: opSeq, fold: fold, kids: parsers}
}

// Or tries each alternative in order from the same position and
// returns the first success. First match wins, not longest match. When
// every alternative fails, the reported error is the one that reached
// furthest into the input.
func Or(parsers ...*Parser) *Parser {
	return &Parser{op: opOr, kids: parsers}
}

// Many applies p repeatedly until it fails and folds the collected
// values. It never fails; zero repetitions yield the fold of no
// values. A repetition that succeeds without consuming input is
// collected once and then stops the loop.
func Many(fold Fold, p *Parser) *Parser {
	return &Parser{op: opMany, fold: fold, kids: []*Parser{p}}
}

// Many1 is Many but requires at least one repetition, propagating the
// first attempt's error otherwise.
func Many1(fold Fold, p *Parser) *Parser {
	return &Parser{op: opMany1, fold: fold, kids: []*Parser{p}}
}

// Count requires exactly n successes of p, with sequence semantics: a
// failure backtracks the whole run.
func Count(n int, fold Fold, p *Parser) *Parser {
	return &Parser{op: opCount, fold: fold, count: n, kids: []*Parser{p}}
}

// SepBy matches zero or more items separated by sep, with no trailing
// separator. Only the item values are folded.
func SepBy(fold Fold, item, sep *Parser) *Parser {
	return &Parser{op: opSepBy, fold: fold, kids: []*Parser{item, sep}}
}

// SepBy1 is SepBy but requires at least one item.
func SepBy1(fold Fold, item, sep *Parser) *Parser {
	return &Parser{op: opSepBy1, fold: fold, kids: []*Parser{item, sep}}
}

// Tag runs p unchanged and labels its result, producing an AST node.
// A node result has label composed onto its tag; any other result
// becomes a leaf node carrying the label. Matching and backtracking
// are unaffected.
func Tag(p *Parser, label string) *Parser {
	return &Parser{op: opTag, lit: label, kids: []*Parser{p}}
}

// Root runs p unchanged and marks a node result as the top-level node
// of the parse. Matching is unaffected.
func Root(p *Parser) *Parser {
	return &Parser{op: opRoot, kids: []*Parser{p}}
}

// Name returns the rule name given to New, or "".
func (p *Parser) Name() string { return p.name }

// String renders the parser tree for debugging. Named rules referenced
// inside the tree print as <name> so recursive grammars render
// finitely; the top-level rule is expanded one level.
func (p *Parser) String() string {
	return p.describe(true)
}

func (p *Parser) describe(top bool) string {
	if !top && p.name != "" {
		return "<" + p.name + ">"
	}
	switch p.op {
	case opUndefined:
		return "<undefined>"
	case opAny:
		return "<any>"
	case opChar:
		return "'" + string(p.char) + "'"
	case opRange:
		return fmt.Sprintf("[%c-%c]", p.lo, p.hi)
	case opOneOf:
		return "[" + p.set + "]"
	case opNoneOf:
		return "[^" + p.set + "]"
	case opSatisfy:
		return "<satisfy>"
	case opString:
		return strconv.Quote(p.lit)
	case opPass:
		return "<pass>"
	case opFail:
		return "<fail>"
	case opLift, opLiftVal:
		return "<lift>"
	case opAnchor:
		return "<anchor>"
	case opProbe:
		return "<state>"
	case opStart:
		return "<start>"
	case opEnd:
		return "<end>"
	case opRegexp:
		return "/" + p.lit + "/"
	case opSeq:
		return "(" + p.joinKids(" ") + ")"
	case opOr:
		return "(" + p.joinKids(" | ") + ")"
	case opMany:
		return p.kids[0].describe(false) + "*"
	case opMany1:
		return p.kids[0].describe(false) + "+"
	case opCount:
		return fmt.Sprintf("%s{%d}", p.kids[0].describe(false), p.count)
	case opSepBy:
		return fmt.Sprintf("(%s %% %s)*", p.kids[0].describe(false), p.kids[1].describe(false))
	case opSepBy1:
		return fmt.Sprintf("(%s %% %s)+", p.kids[0].describe(false), p.kids[1].describe(false))
	case opTag:
		return p.lit + ":" + p.kids[0].describe(false)
	case opRoot:
		return p.kids[0].describe(false)
	}
	return "<?>"
}

func (p *Parser) joinKids(sep string) string {
	parts := make([]string, len(p.kids))
	for i, k := range p.kids {
		parts[i] = k.describe(false)
	}
	return strings.Join(parts, sep)
}
