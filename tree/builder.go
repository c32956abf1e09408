package tree

import (
	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/parser"
	"github.com/dhamidi/greenleaf/syntax"
)

// SyntaxError is a parse diagnostic. Parse errors are positions, not spans,
// so Range is empty for them.
type SyntaxError struct {
	Range   syntax.TextRange
	Message string
}

func (e SyntaxError) Error() string {
	return e.Range.String() + ": " + e.Message
}

type frame struct {
	kind  syntax.Kind
	first int
}

// Builder assembles a green tree from sink callbacks. It implements
// parser.Sink.
type Builder struct {
	cache    *NodeCache
	parents  []frame
	children []*GreenNode
	errors   []SyntaxError
	offset   int
}

var _ parser.Sink = (*Builder)(nil)

func NewBuilder(cache *NodeCache) *Builder {
	return &Builder{cache: cache}
}

func (b *Builder) Leaf(kind syntax.Kind, text string) {
	b.children = append(b.children, b.cache.Leaf(kind, text))
	b.offset += len(text)
}

func (b *Builder) StartBranch(kind syntax.Kind) {
	b.parents = append(b.parents, frame{kind: kind, first: len(b.children)})
}

func (b *Builder) FinishBranch() {
	if len(b.parents) == 0 {
		panic("tree: FinishBranch without an open branch")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	children := make([]*GreenNode, len(b.children)-top.first)
	copy(children, b.children[top.first:])
	b.children = b.children[:top.first]
	b.children = append(b.children, b.cache.Branch(top.kind, children))
}

// Error records message at the current offset.
func (b *Builder) Error(message string) {
	b.errors = append(b.errors, SyntaxError{
		Range:   syntax.TextRange{Start: b.offset, End: b.offset},
		Message: message,
	})
}

// Finish returns the root and the collected errors. Exactly one root must
// have been built.
func (b *Builder) Finish() (*GreenNode, []SyntaxError) {
	if len(b.parents) != 0 || len(b.children) != 1 {
		panic("tree: builder finished with unbalanced branches")
	}
	return b.children[0], b.errors
}

// Build parses tokens with entry and builds the green tree. ok is false if
// entry did not consume every token, in which case nothing is built.
func Build(text string, tokens []lexer.Token, entry parser.Entry, cache *NodeCache) (root *GreenNode, errors []SyntaxError, ok bool) {
	events, complete := parser.Parse(text, tokens, entry)
	if !complete {
		return nil, nil, false
	}
	b := NewBuilder(cache)
	parser.Process(b, text, tokens, events)
	root, errors = b.Finish()
	if root.Width() != len(text) {
		panic("tree: leaves do not cover the source text")
	}
	return root, errors, true
}
