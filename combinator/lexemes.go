package combinator

import "strconv"

// Derived convenience parsers. Everything here is a plain composition
// of the primitives and combinators; none of it extends the engine.

func Whitespace() *Parser { return OneOf(" \t\n\r") }

func Whitespaces() *Parser { return Many(Concat, Whitespace()) }

func Blank() *Parser { return OneOf(" \t") }

func Newline() *Parser { return Char('\n') }

func Tab() *Parser { return Char('\t') }

// Escape matches a backslash together with the character it escapes,
// yielding both verbatim.
func Escape() *Parser { return Seq(Concat, Char('\\'), Any()) }

func Digit() *Parser { return Range('0', '9') }

func HexDigit() *Parser {
	return Or(Range('0', '9'), Range('a', 'f'), Range('A', 'F'))
}

func OctDigit() *Parser { return Range('0', '7') }

func Digits() *Parser { return Many1(Concat, Digit()) }

func HexDigits() *Parser { return Many1(Concat, HexDigit()) }

func OctDigits() *Parser { return Many1(Concat, OctDigit()) }

func Lower() *Parser { return Range('a', 'z') }

func Upper() *Parser { return Range('A', 'Z') }

func Alpha() *Parser { return Or(Lower(), Upper()) }

func Underscore() *Parser { return Char('_') }

func Alphanum() *Parser { return Or(Alpha(), Digit()) }

// Boundary succeeds at a word boundary: exactly one side of the cursor
// is a word character. It consumes nothing.
func Boundary() *Parser {
	return Anchor(func(prev, next rune) bool {
		return wordRune(prev) != wordRune(next)
	})
}

func wordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}

// Int matches decimal digits and yields their value as an int.
func Int() *Parser { return Seq(baseFold(10), Digits()) }

// Hex matches hexadecimal digits and yields their value as an int.
func Hex() *Parser { return Seq(baseFold(16), HexDigits()) }

// Oct matches octal digits and yields their value as an int.
func Oct() *Parser { return Seq(baseFold(8), OctDigits()) }

// Number matches an integer in decimal, hexadecimal or octal notation.
// Decimal wins when notations overlap, per ordered choice.
func Number() *Parser { return Or(Int(), Hex(), Oct()) }

// Real matches an optionally signed decimal number with optional
// fraction and exponent, yielding the matched text.
func Real() *Parser {
	return Seq(Concat,
		maybeText(OneOf("+-")),
		Digits(),
		maybeText(Seq(Concat, Char('.'), Digits())),
		maybeText(Seq(Concat,
			OneOf("eE"),
			maybeText(OneOf("+-")),
			Digits())))
}

// Float is Real converted to a float value.
func Float() *Parser { return Seq(floatFold, Real()) }

// CharLit matches a single-quoted character literal, yielding the
// character (escape sequences stay verbatim, backslash included).
func CharLit() *Parser {
	return Seq(Pick(1), Char('\''), Or(Escape(), NoneOf("'")), Char('\''))
}

// StringLit matches a double-quoted string literal, yielding its body.
func StringLit() *Parser {
	return Seq(Pick(1),
		Char('"'),
		Many(Concat, Or(Escape(), NoneOf("\""))),
		Char('"'))
}

// RegexLit matches a slash-delimited literal, yielding its body.
func RegexLit() *Parser {
	return Seq(Pick(1),
		Char('/'),
		Many(Concat, Or(Escape(), NoneOf("/"))),
		Char('/'))
}

// Ident matches a letter or underscore followed by letters, digits and
// underscores.
func Ident() *Parser {
	return Seq(Concat,
		Or(Alpha(), Underscore()),
		Many(Concat, Or(Alphanum(), Underscore())))
}

// maybeText makes p optional, succeeding with empty text when p does
// not match.
func maybeText(p *Parser) *Parser {
	return Or(p, LiftVal(TextValue("")))
}

// baseFold concatenates the child texts and parses them as an integer
// in the given base. Overflow surfaces as an aborting error.
func baseFold(base int) Fold {
	return func(vals []Value) (Value, error) {
		text, err := Concat(vals)
		if err != nil {
			return Value{}, err
		}
		s, _ := text.Text()
		n, err := strconv.ParseInt(s, base, 64)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	}
}

func floatFold(vals []Value) (Value, error) {
	text, err := Concat(vals)
	if err != nil {
		return Value{}, err
	}
	s, _ := text.Text()
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(x), nil
}
