package combinator

import (
	"fmt"
	"strings"
)

// Error is a positioned match failure. Expected holds labels of the
// matches that would have succeeded at State, in first-seen order with
// duplicates suppressed. Failure, when set, is the literal message of
// an unconditional failure and takes precedence when rendering.
// Received is the rune found at the failure position, 0 at end of
// input.
type Error struct {
	State    State
	File     string
	Expected []string
	Failure  string
	Received rune
}

// newError builds a match failure at st, capturing the rune under the
// cursor.
func newError(in *input, st State, expected ...string) *Error {
	e := &Error{State: st, File: in.file, Expected: expected}
	if r, ok := in.peek(st); ok {
		e.Received = r
	}
	return e
}

// newFailure builds an unconditional failure with a literal message and
// an empty expected-set.
func newFailure(in *input, st State, msg string) *Error {
	e := newError(in, st)
	e.Failure = msg
	return e
}

// addExpected appends labels not already present, preserving insertion
// order.
func (e *Error) addExpected(labels ...string) {
	for _, label := range labels {
		seen := false
		for _, have := range e.Expected {
			if have == label {
				seen = true
				break
			}
		}
		if !seen {
			e.Expected = append(e.Expected, label)
		}
	}
}

// merge combines the failures of two alternatives. The error at the
// furthest position wins outright; at equal positions the expected-sets
// are unioned and a literal message survives only when it is
// unambiguous. Neither argument is modified.
func merge(a, b *Error) *Error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.State.Off > a.State.Off {
		return b
	}
	if a.State.Off > b.State.Off {
		return a
	}
	out := &Error{State: a.State, File: a.File, Received: a.Received}
	out.addExpected(a.Expected...)
	out.addExpected(b.Expected...)
	switch {
	case a.Failure == b.Failure:
		out.Failure = a.Failure
	case a.Failure == "":
		out.Failure = b.Failure
	case b.Failure == "":
		out.Failure = a.Failure
	}
	return out
}

// Error renders the failure on one line:
//
//	<source name> <row+1>:<col+1>: <message or expected list>
func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%d:%d: ", e.State.Row+1, e.State.Col+1)
	if e.Failure != "" {
		b.WriteString(e.Failure)
		return b.String()
	}
	b.WriteString("expected ")
	for i, label := range e.Expected {
		switch {
		case i == 0:
		case i == len(e.Expected)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(label)
	}
	if e.Received != 0 {
		fmt.Fprintf(&b, " at %q", e.Received)
	} else {
		b.WriteString(" at end of input")
	}
	return b.String()
}
