package format

import (
	"io"

	"github.com/dhamidi/combine/combinator"
)

// SexprEncoder renders a node tree on a single line in the
// (tag "contents" children...) form.
type SexprEncoder struct {
	w    io.Writer
	node *combinator.Node
}

func NewSexprEncoder(w io.Writer) *SexprEncoder {
	return &SexprEncoder{w: w}
}

func (e *SexprEncoder) Encode(node *combinator.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SexprEncoder) MarshalText() ([]byte, error) {
	return []byte(e.node.Sexpr()), nil
}
