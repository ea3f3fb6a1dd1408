package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/combine/combinator"
)

type JSONEncoder struct {
	w    io.Writer
	node *combinator.Node
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *combinator.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.node), "", "  ")
}

type jsonNode struct {
	Tag      string        `json:"tag,omitempty"`
	Contents string        `json:"contents,omitempty"`
	Root     bool          `json:"root,omitempty"`
	Position *jsonPosition `json:"position,omitempty"`
	Children []*jsonNode   `json:"children,omitempty"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *combinator.Node) *jsonNode {
	if n == nil {
		return nil
	}

	jn := &jsonNode{
		Tag:      n.Tag,
		Contents: n.Contents,
		Root:     n.Root,
	}

	if n.State != (combinator.State{}) {
		jn.Position = &jsonPosition{
			Offset: n.State.Off,
			Line:   n.State.Row + 1,
			Column: n.State.Col + 1,
		}
	}

	for _, c := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(c))
	}

	return jn
}
