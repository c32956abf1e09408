package format

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

type JSONEncoder struct {
	w    io.Writer
	tree *tree.Tree
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(t *tree.Tree) error {
	e.tree = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(documentOf(e.tree), "", "  ")
}

type document struct {
	Root   *node       `json:"root" yaml:"root"`
	Errors []nodeError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type node struct {
	Kind     string    `json:"kind" yaml:"kind"`
	Span     span      `json:"span" yaml:"span,flow"`
	Text     *leafText `json:"text,omitempty" yaml:"text,omitempty"`
	Children []*node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// span carries both byte offsets and zero-based line/column pairs.
type span struct {
	Start    int      `json:"start" yaml:"start"`
	End      int      `json:"end" yaml:"end"`
	StartPos position `json:"startPos" yaml:"startPos,flow"`
	EndPos   position `json:"endPos" yaml:"endPos,flow"`
}

// leafText is always written as a double-quoted YAML scalar. Plain and
// block scalars fold or drop line breaks.
type leafText string

func (t leafText) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Tag: "!!str", Value: string(t)}, nil
}

type position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type nodeError struct {
	Offset   int      `json:"offset" yaml:"offset"`
	Position position `json:"position" yaml:"position,flow"`
	Message  string   `json:"message" yaml:"message"`
}

func documentOf(t *tree.Tree) document {
	idx := syntax.NewLineIndex(t.Text())
	doc := document{Root: nodeOf(t.Root(), idx)}
	for _, err := range t.Errors() {
		doc.Errors = append(doc.Errors, nodeError{
			Offset:   err.Range.Start,
			Position: positionOf(idx, err.Range.Start),
			Message:  err.Message,
		})
	}
	return doc
}

func nodeOf(n *tree.SyntaxNode, idx *syntax.LineIndex) *node {
	r := n.TextRange()
	jn := &node{
		Kind: n.Kind().String(),
		Span: span{
			Start:    r.Start,
			End:      r.End,
			StartPos: positionOf(idx, r.Start),
			EndPos:   positionOf(idx, r.End),
		},
	}

	if n.IsLeaf() {
		text := leafText(n.Text())
		jn.Text = &text
		return jn
	}

	children := n.Children()
	if len(children) > 0 {
		jn.Children = make([]*node, len(children))
		for i, child := range children {
			jn.Children[i] = nodeOf(child, idx)
		}
	}
	return jn
}

func positionOf(idx *syntax.LineIndex, offset int) position {
	lc := idx.LineCol(offset)
	return position{Line: lc.Line, Column: lc.Col}
}
