package tree

import (
	"context"

	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/parser"
)

// Tree is an immutable parse result: the green root, the text it was built
// from and the errors found while parsing.
type Tree struct {
	green  *GreenNode
	text   string
	errors []SyntaxError
}

// New assembles a tree from parts. errors must be sorted by position.
func New(green *GreenNode, text string, errors []SyntaxError) *Tree {
	return &Tree{green: green, text: text, errors: errors}
}

func (t *Tree) Root() *SyntaxNode { return NewRoot(t.green) }

func (t *Tree) Green() *GreenNode { return t.green }

func (t *Tree) Text() string { return t.text }

func (t *Tree) Errors() []SyntaxError { return t.errors }

type options struct {
	cache *NodeCache
	entry parser.Entry
}

type Option func(*options)

// WithCache shares cache between parses.
func WithCache(cache *NodeCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithEntry parses with a grammar entry other than parser.SourceFile.
func WithEntry(entry parser.Entry) Option {
	return func(o *options) {
		o.entry = entry
	}
}

// Parse parses text into a tree. It never fails; errors are recorded on
// the tree.
func Parse(text string, opts ...Option) *Tree {
	o := options{entry: parser.SourceFile}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = NewNodeCache(DefaultCacheSize)
	}
	green, errors, ok := Build(text, lexer.Tokenize(text), o.entry, o.cache)
	if !ok {
		panic("tree: entry did not consume the whole input")
	}
	return New(green, text, errors)
}

// ParseAll parses texts in order with one shared cache. It stops early when
// ctx is done.
func ParseAll(ctx context.Context, texts []string, opts ...Option) ([]*Tree, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		opts = append(opts, WithCache(NewNodeCache(DefaultCacheSize)))
	}

	trees := make([]*Tree, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return trees, err
		}
		trees = append(trees, Parse(text, opts...))
	}
	return trees, nil
}
