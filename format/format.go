// Package format renders parse trees produced by the combinator
// package for display and machine consumption.
package format

import (
	"encoding"

	"github.com/dhamidi/combine/combinator"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *combinator.Node) error
}
