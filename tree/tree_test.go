package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/parser"
	"github.com/dhamidi/greenleaf/syntax"
)

func TestParseIsLossless(t *testing.T) {
	inputs := []string{
		"",
		"fn main() {\n    let x = 1 + 2;\n}\n",
		"struct S { a: i32 } // trailing",
		"}{ garbage ) ( fn",
		"/* open",
	}
	for _, input := range inputs {
		tr := Parse(input)
		assert.Equal(t, input, tr.Root().Text())
		assert.NoError(t, CheckInvariants(tr))
	}
}

func TestDebugDump(t *testing.T) {
	want := `SourceFile@[0; 8)
  FnDef@[0; 8)
    FnKw@[0; 2) "fn"
    Whitespace@[2; 3) " "
    Name@[3; 4)
      Ident@[3; 4) "f"
    ParamList@[4; 6)
      LParen@[4; 5) "("
      RParen@[5; 6) ")"
    Block@[6; 8)
      LCurly@[6; 7) "{"
      RCurly@[7; 8) "}"
`
	assert.Equal(t, want, DebugDump(Parse("fn f(){}")))
}

func TestErrorPositions(t *testing.T) {
	tr := Parse("fn f() { a b }")
	require.Len(t, tr.Errors(), 1)
	assert.Equal(t, "expected `;`", tr.Errors()[0].Message)
	assert.Equal(t, syntax.TextRange{Start: 10, End: 10}, tr.Errors()[0].Range)
	assert.Contains(t, DebugDump(tr), "error [10; 10): expected `;`")
}

func TestBuildPanicsWhenLeavesMissText(t *testing.T) {
	assert.PanicsWithValue(t, "tree: leaves do not cover the source text", func() {
		Build("fn f", lexer.Tokenize("fn"), parser.SourceFile, nil)
	})
}

func TestNavigation(t *testing.T) {
	tr := Parse("fn f() {}")
	root := tr.Root()
	assert.Nil(t, root.Parent())

	fn := root.FirstChild()
	require.NotNil(t, fn)
	assert.Equal(t, syntax.FnDef, fn.Kind())
	assert.Equal(t, syntax.TextRange{Start: 0, End: 9}, fn.TextRange())
	assert.Equal(t, root.Green(), fn.Parent().Green())

	kinds := []syntax.Kind{}
	for c := fn.FirstChild(); c != nil; c = c.NextSibling() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.FnKw, syntax.Whitespace, syntax.Name, syntax.ParamList,
		syntax.Whitespace, syntax.Block,
	}, kinds)

	block := fn.LastChild()
	assert.Equal(t, syntax.Block, block.Kind())
	assert.Equal(t, syntax.Whitespace, block.PrevSibling().Kind())
	assert.Equal(t, 5, block.Index())
	assert.Equal(t, "{}", block.Text())

	ancestors := block.Ancestors()
	require.Len(t, ancestors, 3)
	assert.Equal(t, syntax.SourceFile, ancestors[2].Kind())

	assert.Nil(t, fn.Child(42))
}

func TestDescendantsPreorder(t *testing.T) {
	root := Parse("fn f(){}").Root()
	var kinds []syntax.Kind
	for _, d := range root.Descendants() {
		kinds = append(kinds, d.Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.SourceFile, syntax.FnDef, syntax.FnKw, syntax.Whitespace,
		syntax.Name, syntax.Ident, syntax.ParamList, syntax.LParen,
		syntax.RParen, syntax.Block, syntax.LCurly, syntax.RCurly,
	}, kinds)
}

func TestCoveringElement(t *testing.T) {
	root := Parse("fn foo() { bar }").Root()

	leaf := root.CoveringElement(syntax.TextRange{Start: 4, End: 5})
	assert.Equal(t, syntax.Ident, leaf.Kind())
	assert.Equal(t, "foo", leaf.Text())

	block := root.CoveringElement(syntax.TextRange{Start: 9, End: 16})
	assert.Equal(t, syntax.Block, block.Kind())

	left := root.CoveringElement(syntax.TextRange{Start: 6, End: 6})
	assert.Equal(t, "foo", left.Text())
}

func TestLeafAtOffset(t *testing.T) {
	exprRoot := Parse("a+b", WithEntry(parser.Expression)).Root()
	left, right := exprRoot.LeafAtOffset(1)
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, "a", left.Text())
	assert.Equal(t, "+", right.Text())

	left, right = exprRoot.LeafAtOffset(0)
	assert.Nil(t, left)
	assert.Equal(t, "a", right.Text())

	left, right = exprRoot.LeafAtOffset(99)
	assert.Nil(t, left)
	assert.Nil(t, right)
}

func TestLeafNeighbours(t *testing.T) {
	root := Parse("fn f() {}").Root()
	name := root.CoveringElement(syntax.TextRange{Start: 3, End: 4})
	require.Equal(t, "f", name.Text())
	assert.Equal(t, " ", name.PrevLeaf().Text())
	assert.Equal(t, "(", name.NextLeaf().Text())
	assert.Nil(t, root.FirstLeaf().PrevLeaf())
}

func TestReplaceWithCopiesPath(t *testing.T) {
	cache := NewNodeCache(DefaultCacheSize)
	tr := Parse("fn f() {}\nfn g() {}", WithCache(cache))
	root := tr.Root()

	name := root.CoveringElement(syntax.TextRange{Start: 3, End: 4})
	newRoot := name.ReplaceWith(cache.Leaf(syntax.Ident, "h"), cache)

	assert.Equal(t, "fn h() {}\nfn g() {}", newRoot.Text())
	assert.Equal(t, "fn f() {}\nfn g() {}", tr.Root().Text())

	oldSecond := root.LastChild()
	newSecond := NewRoot(newRoot).LastChild()
	assert.Same(t, oldSecond.Green(), newSecond.Green())
}

func TestGreenSharing(t *testing.T) {
	cache := NewNodeCache(DefaultCacheSize)
	tr := Parse("fn f() {}\nfn f() {}", WithCache(cache))
	first := tr.Root().FirstChild()
	second := tr.Root().LastChild()
	require.Equal(t, syntax.FnDef, second.Kind())
	assert.Same(t, first.Green(), second.Green())

	again := Parse("fn f() {}", WithCache(cache))
	assert.Same(t, first.Green(), again.Root().FirstChild().Green())

	stats := cache.Stats()
	assert.Positive(t, stats.Hits)
	assert.Positive(t, stats.Entries)
}

func TestLeafInterning(t *testing.T) {
	a := Parse("fn a() {\n    x\n}", WithCache(NewNodeCache(0)))
	b := Parse("fn b() {\n    y\n}", WithCache(NewNodeCache(0)))

	wsA := a.Root().CoveringElement(syntax.TextRange{Start: 8, End: 13})
	wsB := b.Root().CoveringElement(syntax.TextRange{Start: 8, End: 13})
	require.Equal(t, syntax.Whitespace, wsA.Kind())
	assert.Same(t, wsA.Green(), wsB.Green())

	fnA := a.Root().FirstLeaf()
	fnB := b.Root().FirstLeaf()
	assert.Same(t, fnA.Green(), fnB.Green())
	assert.Equal(t, "", fnA.Green().text, "fixed-text leaves do not store text")
	assert.Equal(t, "fn", fnA.Green().LeafText())
}

func TestCacheIsBounded(t *testing.T) {
	cache := NewNodeCache(3)
	Parse("fn a() { 1 + 2 }\nstruct S { x: u8 }", WithCache(cache))
	stats := cache.Stats()
	assert.LessOrEqual(t, stats.Entries, 3)
	assert.Positive(t, stats.Evictions)

	disabled := NewNodeCache(0)
	Parse("fn a() {}", WithCache(disabled))
	assert.Equal(t, CacheStats{}, disabled.Stats())
}

func TestParseAll(t *testing.T) {
	trees, err := ParseAll(context.Background(), []string{"fn a() {}", "fn a() {}"})
	require.NoError(t, err)
	require.Len(t, trees, 2)
	assert.Same(t, trees[0].Green(), trees[1].Green())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	trees, err = ParseAll(ctx, []string{"fn a() {}"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, trees)
}

func TestCheckInvariantsRejectsBrokenTree(t *testing.T) {
	tr := Parse("fn f() {}")
	broken := New(tr.Green(), "fn g() {}", nil)
	assert.ErrorIs(t, CheckInvariants(broken), ErrInvariant)

	unsorted := New(tr.Green(), tr.Text(), []SyntaxError{
		{Range: syntax.TextRange{Start: 5, End: 5}},
		{Range: syntax.TextRange{Start: 1, End: 1}},
	})
	assert.ErrorIs(t, CheckInvariants(unsorted), ErrInvariant)
}
