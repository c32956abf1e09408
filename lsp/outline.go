package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

var symbolKinds = map[syntax.Kind]protocol.SymbolKind{
	syntax.FnDef:         protocol.SymbolKindFunction,
	syntax.StructDef:     protocol.SymbolKindStruct,
	syntax.UnionDef:      protocol.SymbolKindStruct,
	syntax.EnumDef:       protocol.SymbolKindEnum,
	syntax.TraitDef:      protocol.SymbolKindInterface,
	syntax.ImplBlock:     protocol.SymbolKindClass,
	syntax.Module:        protocol.SymbolKindModule,
	syntax.ConstDef:      protocol.SymbolKindConstant,
	syntax.StaticDef:     protocol.SymbolKindVariable,
	syntax.TypeAliasDef:  protocol.SymbolKindTypeParameter,
	syntax.EnumVariant:   protocol.SymbolKindEnumMember,
	syntax.NamedFieldDef: protocol.SymbolKindField,
}

func documentSymbols(doc *Document) []protocol.DocumentSymbol {
	return symbolsIn(doc, doc.Tree.Root())
}

// symbolsIn collects the symbols below n. Function bodies are not searched.
func symbolsIn(doc *Document, n *tree.SyntaxNode) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, c := range n.Children() {
		if c.IsLeaf() || c.Kind() == syntax.Block {
			continue
		}
		kind, ok := symbolKinds[c.Kind()]
		if !ok {
			out = append(out, symbolsIn(doc, c)...)
			continue
		}
		name, selection, ok := symbolName(c)
		if !ok {
			out = append(out, symbolsIn(doc, c)...)
			continue
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           name,
			Kind:           kind,
			Range:          doc.rangeOf(c.TextRange()),
			SelectionRange: doc.rangeOf(selection),
			Children:       symbolsIn(doc, c),
		})
	}
	return out
}

// symbolName returns the display name of an item and the range to select
// for it. Impl blocks are named after their header.
func symbolName(n *tree.SyntaxNode) (string, syntax.TextRange, bool) {
	if n.Kind() == syntax.ImplBlock {
		return implName(n)
	}
	for _, c := range n.Children() {
		if c.Kind() == syntax.Name {
			return c.Text(), c.TextRange(), c.Text() != ""
		}
	}
	return "", syntax.TextRange{}, false
}

func implName(n *tree.SyntaxNode) (string, syntax.TextRange, bool) {
	var sb strings.Builder
	var r syntax.TextRange
	started := false
	for _, c := range n.Children() {
		if c.Kind() == syntax.ImplKw {
			started = true
			r = c.TextRange()
		}
		if !started {
			continue
		}
		if c.Kind() == syntax.ItemList || c.Kind() == syntax.WhereClause {
			break
		}
		if c.Kind().IsTrivia() {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(c.Text())
		r.End = c.TextRange().End
	}
	name := strings.Join(strings.Fields(sb.String()), " ")
	return name, r, started
}

var foldable = map[syntax.Kind]bool{
	syntax.Block:             true,
	syntax.ItemList:          true,
	syntax.NamedFieldDefList: true,
	syntax.EnumVariantList:   true,
	syntax.MatchArmList:      true,
	syntax.NamedFieldList:    true,
	syntax.UseTreeList:       true,
	syntax.TokenTree:         true,
	syntax.ArgList:           true,
	syntax.ParamList:         true,
}

// foldingRanges folds delimited lists and comments that span lines. The
// closing line of a region stays visible.
func foldingRanges(doc *Document) []protocol.FoldingRange {
	var out []protocol.FoldingRange
	region := func(r syntax.TextRange, keepLast bool, kind *string) {
		start := doc.Lines.LineCol(r.Start).Line
		end := doc.Lines.LineCol(r.End).Line
		if keepLast {
			end--
		}
		if end <= start {
			return
		}
		out = append(out, protocol.FoldingRange{
			StartLine: protocol.UInteger(start),
			EndLine:   protocol.UInteger(end),
			Kind:      kind,
		})
	}
	comment := string(protocol.FoldingRangeKindComment)

	var run syntax.TextRange
	inRun := false
	flush := func() {
		if inRun {
			region(run, false, &comment)
		}
		inRun = false
	}

	doc.Tree.Root().Walk(func(n *tree.SyntaxNode) bool {
		switch {
		case foldable[n.Kind()]:
			region(n.TextRange(), true, nil)
		case n.Kind() == syntax.Comment && strings.HasPrefix(n.Text(), "//"):
			if inRun {
				run.End = n.TextRange().End
			} else {
				run, inRun = n.TextRange(), true
			}
		case n.Kind() == syntax.Comment:
			flush()
			region(n.TextRange(), false, &comment)
		case n.Kind() == syntax.Whitespace:
			if strings.Count(n.Text(), "\n") > 1 {
				flush()
			}
		case n.IsLeaf():
			flush()
		}
		return true
	})
	flush()
	return out
}

// selectionRange expands outward from pos through every enclosing node.
func selectionRange(doc *Document, pos protocol.Position) protocol.SelectionRange {
	root := doc.Tree.Root()
	start := root
	switch left, right := root.LeafAtOffset(doc.offset(pos)); {
	case right != nil && (left == nil || left.Kind().IsTrivia()):
		start = right
	case left != nil:
		start = left
	}
	ancestors := start.Ancestors()

	var outer *protocol.SelectionRange
	for i := len(ancestors) - 1; i >= 0; i-- {
		r := doc.rangeOf(ancestors[i].TextRange())
		if outer != nil && outer.Range == r {
			continue
		}
		outer = &protocol.SelectionRange{Range: r, Parent: outer}
	}
	return *outer
}
