// Package format renders syntax trees for machines: JSON and YAML
// documents of the full tree and a tab-separated token listing.
package format

import (
	"encoding"

	"github.com/dhamidi/greenleaf/tree"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(t *tree.Tree) error
}
