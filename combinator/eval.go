package combinator

import "fmt"

// eval interprets p against the input at st. It returns the advanced
// state and the produced value, or an error: a *Error for a match
// failure, which choice and repetition combinators recover from, or a
// *TypeMismatchError from a fold, which aborts the parse. On failure
// the returned state is always the caller's st, so backtracking is
// simply continuing from it.
func eval(in *input, st State, p *Parser) (State, Value, error) {
	switch p.op {
	case opUndefined:
		return st, Value{}, newFailure(in, st, fmt.Sprintf("rule %q used before being defined", p.name))

	case opAny:
		r, ok := in.peek(st)
		if !ok {
			return st, Value{}, newError(in, st, "any character")
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opChar:
		r, ok := in.peek(st)
		if !ok || r != p.char {
			return st, Value{}, newError(in, st, string(p.char))
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opRange:
		r, ok := in.peek(st)
		if !ok || r < p.lo || r > p.hi {
			return st, Value{}, newError(in, st, fmt.Sprintf("%c-%c", p.lo, p.hi))
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opOneOf:
		r, ok := in.peek(st)
		if !ok || !runeIn(p.set, r) {
			return st, Value{}, newError(in, st, "one of "+p.set)
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opNoneOf:
		r, ok := in.peek(st)
		if !ok || runeIn(p.set, r) {
			return st, Value{}, newError(in, st, "none of "+p.set)
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opSatisfy:
		r, ok := in.peek(st)
		if !ok || !p.pred(r) {
			return st, Value{}, newError(in, st, "character satisfying predicate")
		}
		return st.advance(string(r)), TextValue(string(r)), nil

	case opString:
		// Atomic: a partial prefix match consumes nothing.
		if !in.hasPrefix(st, p.lit) {
			return st, Value{}, newError(in, st, p.lit)
		}
		return st.advance(p.lit), TextValue(p.lit), nil

	case opPass:
		return st, UnitValue(), nil

	case opFail:
		return st, Value{}, newFailure(in, st, p.lit)

	case opLift:
		return st, p.lift(), nil

	case opLiftVal:
		return st, p.val, nil

	case opAnchor:
		prev, _ := in.prev(st)
		next, _ := in.peek(st)
		if !p.anchor(prev, next) {
			return st, Value{}, newError(in, st, "anchor")
		}
		return st, UnitValue(), nil

	case opProbe:
		return st, StateValue(st), nil

	case opStart:
		if st.Off != 0 {
			return st, Value{}, newError(in, st, "start of input")
		}
		return st, UnitValue(), nil

	case opEnd:
		if st.Off != len(in.text) {
			return st, Value{}, newError(in, st, "end of input")
		}
		return st, UnitValue(), nil

	case opRegexp:
		return evalRegexp(in, st, p)

	case opSeq:
		vals := make([]Value, 0, len(p.kids))
		cur := st
		for _, k := range p.kids {
			next, v, err := eval(in, cur, k)
			if err != nil {
				return st, Value{}, err
			}
			vals = append(vals, v)
			cur = next
		}
		return foldVals(st, cur, p.fold, vals)

	case opOr:
		var merged *Error
		for _, k := range p.kids {
			next, v, err := eval(in, st, k)
			if err == nil {
				return next, v, nil
			}
			me, ok := err.(*Error)
			if !ok {
				return st, Value{}, err
			}
			merged = merge(merged, me)
		}
		if merged == nil {
			merged = newError(in, st, "one of no alternatives")
		}
		return st, Value{}, merged

	case opMany, opMany1:
		var vals []Value
		cur := st
		for {
			next, v, err := eval(in, cur, p.kids[0])
			if err != nil {
				if _, ok := err.(*Error); !ok {
					return st, Value{}, err
				}
				if p.op == opMany1 && len(vals) == 0 {
					return st, Value{}, err
				}
				break
			}
			vals = append(vals, v)
			if next.Off == cur.Off {
				// Zero-width success: collect once, then stop so a
				// non-consuming repetition cannot loop forever.
				break
			}
			cur = next
		}
		return foldVals(st, cur, p.fold, vals)

	case opCount:
		vals := make([]Value, 0, p.count)
		cur := st
		for i := 0; i < p.count; i++ {
			next, v, err := eval(in, cur, p.kids[0])
			if err != nil {
				return st, Value{}, err
			}
			vals = append(vals, v)
			cur = next
		}
		return foldVals(st, cur, p.fold, vals)

	case opSepBy, opSepBy1:
		item, sep := p.kids[0], p.kids[1]
		var vals []Value
		cur, v, err := eval(in, st, item)
		if err != nil {
			if _, ok := err.(*Error); !ok {
				return st, Value{}, err
			}
			if p.op == opSepBy1 {
				return st, Value{}, err
			}
			return foldVals(st, st, p.fold, nil)
		}
		vals = append(vals, v)
		for {
			// A separator with no item after it is not consumed.
			afterSep, _, err := eval(in, cur, sep)
			if err != nil {
				if _, ok := err.(*Error); !ok {
					return st, Value{}, err
				}
				break
			}
			next, v, err := eval(in, afterSep, item)
			if err != nil {
				if _, ok := err.(*Error); !ok {
					return st, Value{}, err
				}
				break
			}
			vals = append(vals, v)
			if next.Off == cur.Off {
				break
			}
			cur = next
		}
		return foldVals(st, cur, p.fold, vals)

	case opTag:
		next, v, err := eval(in, st, p.kids[0])
		if err != nil {
			return st, Value{}, err
		}
		if n, nerr := v.Node(); nerr == nil {
			tagged := *n
			if tagged.Tag == "" {
				tagged.Tag = p.lit
			} else {
				tagged.Tag = p.lit + "|" + tagged.Tag
			}
			return next, NodeValue(&tagged), nil
		}
		return next, NodeValue(&Node{Tag: p.lit, Contents: v.contents(), State: st}), nil

	case opRoot:
		next, v, err := eval(in, st, p.kids[0])
		if err != nil {
			return st, Value{}, err
		}
		if n, nerr := v.Node(); nerr == nil {
			rooted := *n
			rooted.Root = true
			return next, NodeValue(&rooted), nil
		}
		return next, v, nil
	}
	return st, Value{}, newFailure(in, st, fmt.Sprintf("unknown parser op %d", p.op))
}

// foldVals applies f to vals, turning a fold failure into an aborting
// error anchored at the combinator's start.
func foldVals(start, end State, f Fold, vals []Value) (State, Value, error) {
	if f == nil {
		f = Collect
	}
	out, err := f(vals)
	if err != nil {
		return start, Value{}, err
	}
	return end, out, nil
}

func runeIn(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
