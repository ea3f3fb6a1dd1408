package combinator

import (
	"strconv"
	"strings"
)

// Node is a tree of tagged parse results. Tag carries the labels
// attached by the Tag combinator, composed outermost-first with '|'.
// Contents is the matched text for leaf nodes. State is the position
// where the match began. Root marks the top-level node of a parse, set
// by the Root combinator.
type Node struct {
	Tag      string
	Contents string
	State    State
	Root     bool
	Children []*Node
}

func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// String renders the tree indented, one node per line.
func (n *Node) String() string {
	var b strings.Builder
	n.print(&b, 0)
	return b.String()
}

func (n *Node) print(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	if n.Tag == "" {
		b.WriteString(">")
	} else {
		b.WriteString(n.Tag)
	}
	if n.Contents != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Contents))
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.print(b, depth+1)
	}
}

// Sexpr renders the tree on one line as (tag "contents" children...).
func (n *Node) Sexpr() string {
	var b strings.Builder
	n.sexpr(&b)
	return b.String()
}

func (n *Node) sexpr(b *strings.Builder) {
	b.WriteByte('(')
	if n.Tag == "" {
		b.WriteString(">")
	} else {
		b.WriteString(n.Tag)
	}
	if n.Contents != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Contents))
	}
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.sexpr(b)
	}
	b.WriteByte(')')
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}
