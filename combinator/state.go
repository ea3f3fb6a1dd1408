// Package combinator implements a parser-combinator engine: a set of
// primitive matchers and composition operators for building recursive
// descent parsers that run against a text input and produce either a
// typed result value or a positioned error.
package combinator

import (
	"fmt"
	"unicode/utf8"
)

// State is a cursor into the input being parsed. It is a small value
// type: saving and restoring a State is a plain copy, which is how
// every backtracking combinator undoes consumption.
type State struct {
	Off int // byte offset into the input
	Pos int // rune index, counted from the start of the input
	Row int // 0-based line, incremented on each consumed '\n'
	Col int // 0-based rune offset since the last '\n'
}

func (s State) String() string {
	return fmt.Sprintf("%d:%d", s.Row+1, s.Col+1)
}

// advance returns a copy of s moved past text, updating row and column
// for any newlines in it. The receiver is never modified.
func (s State) advance(text string) State {
	for _, r := range text {
		s.Off += utf8.RuneLen(r)
		s.Pos++
		if r == '\n' {
			s.Row++
			s.Col = 0
		} else {
			s.Col++
		}
	}
	return s
}

// input is the fully materialized text a parse runs over, together with
// the source name used in error messages. It is read-only for the
// duration of a parse.
type input struct {
	file string
	text string
}

// peek returns the rune at the cursor without consuming it.
func (in *input) peek(s State) (rune, bool) {
	if s.Off >= len(in.text) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(in.text[s.Off:])
	return r, true
}

// prev returns the rune immediately before the cursor.
func (in *input) prev(s State) (rune, bool) {
	if s.Off == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(in.text[:s.Off])
	return r, true
}

// hasPrefix reports whether the input at the cursor starts with lit.
func (in *input) hasPrefix(s State, lit string) bool {
	return len(in.text)-s.Off >= len(lit) && in.text[s.Off:s.Off+len(lit)] == lit
}
