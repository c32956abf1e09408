// Package reparse updates a syntax tree after a text edit without
// reparsing the whole file when it can avoid it.
//
// Two shortcuts are tried before falling back to a full parse. A leaf
// relex handles edits inside a single identifier, string, comment or
// whitespace token that still lexes as the same kind of token. A block
// reparse re-lexes and reparses the smallest brace-delimited node around
// the edit and splices the result into the old tree. Everything outside
// the reparsed part keeps its green nodes.
package reparse

import (
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/parser"
	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

var log = commonlog.GetLogger("greenleaf.reparse")

// Strategy tells which path produced a reparsed tree.
type Strategy int

const (
	Full Strategy = iota
	Leaf
	Block
)

func (s Strategy) String() string {
	switch s {
	case Leaf:
		return "leaf"
	case Block:
		return "block"
	default:
		return "full"
	}
}

type options struct {
	cache    *tree.NodeCache
	validate bool
	observe  func(strategy Strategy, mismatch bool)
}

type Option func(*options)

// WithCache builds new nodes through cache.
func WithCache(cache *tree.NodeCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithValidation compares every incremental result with a full parse. On a
// mismatch the full parse wins and the mismatch is logged.
func WithValidation(validate bool) Option {
	return func(o *options) {
		o.validate = validate
	}
}

// WithObserver calls fn after every reparse with the strategy that
// produced the result and whether validation rejected an incremental tree.
func WithObserver(fn func(strategy Strategy, mismatch bool)) Option {
	return func(o *options) {
		o.observe = fn
	}
}

// Reparse applies edit to t and returns the updated tree. The error is
// non-nil only when the edit does not fit t's text.
func Reparse(t *tree.Tree, edit TextEdit, opts ...Option) (*tree.Tree, Strategy, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = tree.NewNodeCache(tree.DefaultCacheSize)
	}

	text, err := edit.Apply(t.Text())
	if err != nil {
		return nil, Full, err
	}

	mismatch := false
	result, strategy := incremental(t, edit, text, o.cache)
	if result == nil {
		result = tree.Parse(text, tree.WithCache(o.cache))
	} else if o.validate {
		full := tree.Parse(text, tree.WithCache(o.cache))
		if err := compare(result, full); err != nil {
			log.Errorf("%s reparse of %v diverged from a full parse: %s", strategy, edit, err)
			result, strategy, mismatch = full, Full, true
		}
	}
	if o.observe != nil {
		o.observe(strategy, mismatch)
	}
	return result, strategy, nil
}

func incremental(t *tree.Tree, edit TextEdit, text string, cache *tree.NodeCache) (*tree.Tree, Strategy) {
	if green, r, ok := relexLeaf(t.Root(), edit, cache); ok {
		return tree.New(green, text, shiftErrors(t.Errors(), r, edit.Delta(), nil)), Leaf
	}
	if green, errs, ok := reparseBlock(t, edit, cache); ok {
		return tree.New(green, text, errs), Block
	}
	log.Debugf("no incremental path for %v, reparsing in full", edit)
	return nil, Full
}

// relexLeaf handles an edit that stays inside one token and leaves the
// token's kind and its neighbours' boundaries unchanged. It returns the
// new root and the old range of the replaced leaf.
func relexLeaf(root *tree.SyntaxNode, edit TextEdit, cache *tree.NodeCache) (*tree.GreenNode, syntax.TextRange, bool) {
	leaf := root.CoveringElement(edit.Delete)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, syntax.TextRange{}, false
	}
	kind, r := leaf.Kind(), leaf.TextRange()
	switch kind {
	case syntax.Whitespace, syntax.Comment:
		deleted := leaf.Text()[edit.Delete.Start-r.Start : edit.Delete.End-r.Start]
		if strings.ContainsRune(deleted, '\n') || strings.ContainsRune(edit.Insert, '\n') {
			return nil, syntax.TextRange{}, false
		}
	case syntax.Ident:
		if syntax.IsContextualKeyword(leaf.Text()) {
			return nil, syntax.TextRange{}, false
		}
	case syntax.StringLit:
	default:
		return nil, syntax.TextRange{}, false
	}

	newText := edit.applyWithin(leaf.Text(), r)
	switch kind {
	case syntax.Ident:
		if _, ok := syntax.Keyword(newText); ok || syntax.IsContextualKeyword(newText) {
			return nil, syntax.TextRange{}, false
		}
	case syntax.Whitespace:
		// A blank line detaches comments from the item below them.
		if strings.Contains(leaf.Text(), "\n\n") != strings.Contains(newText, "\n\n") {
			return nil, syntax.TextRange{}, false
		}
	}

	// The new token must lex the same way in context: it may neither merge
	// with a neighbour nor split.
	var context strings.Builder
	var want []lexer.Token
	if prev := leaf.PrevLeaf(); prev != nil {
		context.WriteString(prev.Text())
		want = append(want, lexer.Token{Kind: lexedKind(prev), Len: prev.TextRange().Len()})
	}
	context.WriteString(newText)
	want = append(want, lexer.Token{Kind: kind, Len: len(newText)})
	if next := leaf.NextLeaf(); next != nil {
		context.WriteString(next.Text())
		want = append(want, lexer.Token{Kind: lexedKind(next), Len: next.TextRange().Len()})
	}
	if !slices.Equal(lexer.Tokenize(context.String()), want) {
		return nil, syntax.TextRange{}, false
	}

	return leaf.ReplaceWith(cache.Leaf(kind, newText), cache), r, true
}

// lexedKind undoes contextual keyword remapping. Fused operators are left
// alone; their length never matches a single raw token.
func lexedKind(n *tree.SyntaxNode) syntax.Kind {
	if n.Kind() == syntax.UnionKw {
		return syntax.Ident
	}
	return n.Kind()
}

// reparseBlock reparses the innermost brace-delimited ancestor of the edit
// that has a standalone grammar entry.
func reparseBlock(t *tree.Tree, edit TextEdit, cache *tree.NodeCache) (*tree.GreenNode, []tree.SyntaxError, bool) {
	for n := t.Root().CoveringElement(edit.Delete); n != nil; n = n.Parent() {
		if n.IsLeaf() || n.ChildCount() == 0 {
			continue
		}
		entry, ok := parser.Reparser(n.Kind(), n.FirstChild().Kind())
		if !ok {
			continue
		}
		r := n.TextRange()
		if !r.ContainsRange(edit.Delete) || n.LastChild().Kind() != syntax.RCurly {
			continue
		}

		text := edit.applyWithin(n.Text(), r)
		tokens := lexer.Tokenize(text)
		if !balanced(tokens) {
			continue
		}
		green, errs, ok := tree.Build(text, tokens, entry, cache)
		if !ok || green.Kind() != n.Kind() {
			continue
		}

		for i := range errs {
			errs[i].Range = errs[i].Range.Shift(r.Start)
		}
		merged := shiftErrors(t.Errors(), r, edit.Delta(), errs)
		return n.ReplaceWith(green, cache), merged, true
	}
	return nil, nil, false
}

// balanced reports whether tokens open with `{`, close with the matching
// `}` and never close more braces than they open in between.
func balanced(tokens []lexer.Token) bool {
	if len(tokens) < 2 || tokens[0].Kind != syntax.LCurly || tokens[len(tokens)-1].Kind != syntax.RCurly {
		return false
	}
	depth := 0
	for _, tok := range tokens[1 : len(tokens)-1] {
		switch tok.Kind {
		case syntax.LCurly:
			depth++
		case syntax.RCurly:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// shiftErrors keeps the errors before r, replaces those strictly inside it
// with inner and moves those after it by delta.
func shiftErrors(errs []tree.SyntaxError, r syntax.TextRange, delta int, inner []tree.SyntaxError) []tree.SyntaxError {
	out := make([]tree.SyntaxError, 0, len(errs)+len(inner))
	i := 0
	for ; i < len(errs) && errs[i].Range.Start <= r.Start; i++ {
		out = append(out, errs[i])
	}
	out = append(out, inner...)
	for ; i < len(errs); i++ {
		if errs[i].Range.Start < r.End {
			continue
		}
		e := errs[i]
		e.Range = e.Range.Shift(delta)
		out = append(out, e)
	}
	return out
}
