package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

// LineEncoder writes one tab-separated line per leaf:
//
//	kind	start	end	line:column	"text"
//
// followed by one line per error. Lines and columns are one-based.
type LineEncoder struct {
	w    io.Writer
	tree *tree.Tree
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t *tree.Tree) error {
	e.tree = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	idx := syntax.NewLineIndex(e.tree.Text())

	for leaf := e.tree.Root().FirstLeaf(); leaf != nil; leaf = leaf.NextLeaf() {
		r := leaf.TextRange()
		fmt.Fprintf(&sb, "%s\t%d\t%d\t%s\t%s\n",
			leaf.Kind(),
			r.Start,
			r.End,
			e.position(idx, r.Start),
			strconv.Quote(leaf.Text()),
		)
	}

	for _, err := range e.tree.Errors() {
		fmt.Fprintf(&sb, "error\t%d\t%d\t%s\t%s\n",
			err.Range.Start,
			err.Range.End,
			e.position(idx, err.Range.Start),
			strconv.Quote(err.Message),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) position(idx *syntax.LineIndex, offset int) string {
	lc := idx.LineCol(offset)
	return fmt.Sprintf("%d:%d", lc.Line+1, lc.Col+1)
}
