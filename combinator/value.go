package combinator

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindUnit Kind = iota
	KindText
	KindInt
	KindFloat
	KindList
	KindState
	KindNode
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	case KindState:
		return "state"
	case KindNode:
		return "node"
	case KindOpaque:
		return "opaque"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value holds the result of a successful match. It is a closed tagged
// union: each Value holds exactly one of the kinds above, and accessing
// it as the wrong kind returns a TypeMismatchError rather than
// corrupted data. The zero Value is the unit value.
type Value struct {
	kind    Kind
	text    string
	integer int64
	float   float64
	list    []Value
	state   State
	node    *Node
	tag     string
	payload any
}

// UnitValue returns the unit value, carrying no data.
func UnitValue() Value { return Value{} }

// TextValue returns a Value holding a text fragment.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// IntValue returns a Value holding an integer.
func IntValue(n int64) Value { return Value{kind: KindInt, integer: n} }

// FloatValue returns a Value holding a float.
func FloatValue(x float64) Value { return Value{kind: KindFloat, float: x} }

// ListValue returns a Value holding an ordered list of Values.
func ListValue(vals ...Value) Value { return Value{kind: KindList, list: vals} }

// StateValue returns a Value holding a parse position.
func StateValue(s State) Value { return Value{kind: KindState, state: s} }

// NodeValue returns a Value holding an AST node.
func NodeValue(n *Node) Value { return Value{kind: KindNode, node: n} }

// OpaqueValue returns a Value holding an arbitrary payload identified
// by a caller-chosen type tag. Extraction checks the tag.
func OpaqueValue(tag string, payload any) Value {
	return Value{kind: KindOpaque, tag: tag, payload: payload}
}

// Kind returns the kind of value held.
func (v Value) Kind() Kind { return v.kind }

// TypeMismatchError reports that a Value was accessed as a kind it does
// not hold. It signals a contract violation between a fold function and
// the parsers that feed it; the evaluator does not recover from it.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
	Tag  string // opaque type tag, when the mismatch is between tags
}

func (e *TypeMismatchError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("value holds %s %q, not %q", e.Got, e.Tag, e.Want)
	}
	return fmt.Sprintf("value holds %s, not %s", e.Got, e.Want)
}

func (v Value) mismatch(want Kind) *TypeMismatchError {
	return &TypeMismatchError{Want: want, Got: v.kind}
}

// Text extracts a text fragment.
func (v Value) Text() (string, error) {
	if v.kind != KindText {
		return "", v.mismatch(KindText)
	}
	return v.text, nil
}

// Int extracts an integer.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.integer, nil
}

// Float extracts a float.
func (v Value) Float() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}
	return v.float, nil
}

// List extracts a list of Values.
func (v Value) List() ([]Value, error) {
	if v.kind != KindList {
		return nil, v.mismatch(KindList)
	}
	return v.list, nil
}

// State extracts a parse position.
func (v Value) State() (State, error) {
	if v.kind != KindState {
		return State{}, v.mismatch(KindState)
	}
	return v.state, nil
}

// Node extracts an AST node.
func (v Value) Node() (*Node, error) {
	if v.kind != KindNode {
		return nil, v.mismatch(KindNode)
	}
	return v.node, nil
}

// Opaque extracts a payload stored under the given type tag.
func (v Value) Opaque(tag string) (any, error) {
	if v.kind != KindOpaque {
		return nil, v.mismatch(KindOpaque)
	}
	if v.tag != tag {
		return nil, &TypeMismatchError{Want: KindOpaque, Got: KindOpaque, Tag: tag}
	}
	return v.payload, nil
}

// String renders the value for debugging. Text values render quoted.
func (v Value) String() string {
	switch v.kind {
	case KindUnit:
		return "()"
	case KindText:
		return strconv.Quote(v.text)
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindState:
		return v.state.String()
	case KindNode:
		return v.node.Sexpr()
	case KindOpaque:
		return fmt.Sprintf("<%s>", v.tag)
	}
	return "?"
}

// A Fold combines the ordered Values produced by a combinator's
// children into a single Value. Sequences pass one Value per child;
// repetitions pass one Value per successful repetition. A fold must
// decide from the Values alone, never from the consumed input. A
// returned error (typically a *TypeMismatchError) aborts the parse.
type Fold func(vals []Value) (Value, error)

// First returns the first child Value and discards the rest; with no
// children it returns the unit value. Commonly used to drop delimiters.
func First(vals []Value) (Value, error) {
	if len(vals) == 0 {
		return UnitValue(), nil
	}
	return vals[0], nil
}

// Pick returns a fold that keeps the child Value at index i, discarding
// the rest. Out-of-range indexes yield the unit value.
func Pick(i int) Fold {
	return func(vals []Value) (Value, error) {
		if i < 0 || i >= len(vals) {
			return UnitValue(), nil
		}
		return vals[i], nil
	}
}

// Concat requires every child to hold text and joins the fragments in
// order.
func Concat(vals []Value) (Value, error) {
	var b strings.Builder
	for _, v := range vals {
		s, err := v.Text()
		if err != nil {
			return Value{}, err
		}
		b.WriteString(s)
	}
	return TextValue(b.String()), nil
}

// Discard drops all children and returns the unit value.
func Discard(vals []Value) (Value, error) {
	return UnitValue(), nil
}

// Collect gathers the children into a list Value, in order.
func Collect(vals []Value) (Value, error) {
	out := make([]Value, len(vals))
	copy(out, vals)
	return ListValue(out...), nil
}

// Gather builds an AST node whose children are the children's nodes.
// Non-node children become leaf nodes; unit children are dropped.
func Gather(vals []Value) (Value, error) {
	parent := &Node{}
	for _, v := range vals {
		switch v.kind {
		case KindUnit:
			continue
		case KindNode:
			parent.AddChild(v.node)
		default:
			parent.AddChild(&Node{Contents: v.contents()})
		}
	}
	return NodeValue(parent), nil
}

// contents renders a value as node contents: text verbatim, everything
// else through the debug form.
func (v Value) contents() string {
	if v.kind == KindText {
		return v.text
	}
	return v.String()
}
