package parser

import (
	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/syntax"
)

// Entry is a grammar rule that can start a parse.
type Entry func(p *Parser)

// Parse runs entry over tokens and returns the resulting events. complete
// reports whether the entry consumed every significant token.
func Parse(text string, tokens []lexer.Token, entry Entry) (events []Event, complete bool) {
	p := newParser(text, tokens)
	entry(p)
	complete = p.AtEOF()
	return p.finish(), complete
}

// SourceFile parses a whole file.
func SourceFile(p *Parser) {
	m := p.Start()
	modContents(p, false)
	m.Complete(p, syntax.SourceFile)
}

// Expression parses a single expression. The result is still rooted at a
// SourceFile node; anything after the expression is reported and wrapped
// in ERROR nodes.
func Expression(p *Parser) {
	m := p.Start()
	expr(p)
	for !p.At(syntax.EOF) {
		p.ErrAndBump("expected end of input")
	}
	m.Complete(p, syntax.SourceFile)
}

// Reparser returns the entry that can parse a node of the given kind in
// isolation, if there is one. Only brace-delimited nodes qualify, and only
// those whose contents parse the same regardless of where they appear.
func Reparser(kind, firstChild syntax.Kind) (Entry, bool) {
	switch kind {
	case syntax.Block:
		return block, true
	case syntax.ItemList:
		return itemList, true
	case syntax.NamedFieldDefList:
		return namedFieldDefList, true
	case syntax.NamedFieldList:
		return namedFieldList, true
	case syntax.EnumVariantList:
		return enumVariantList, true
	case syntax.MatchArmList:
		return matchArmList, true
	case syntax.UseTreeList:
		return useTreeList, true
	case syntax.TokenTree:
		if firstChild == syntax.LCurly {
			return tokenTree, true
		}
	}
	return nil, false
}

// errorBlock swallows a brace-delimited block where none was expected.
func errorBlock(p *Parser, message string) {
	m := p.Start()
	p.Error(message)
	p.Bump()
	exprBlockContents(p)
	p.Eat(syntax.RCurly)
	m.Complete(p, syntax.Error)
}

func name(p *Parser, recovery TokenSet) {
	if p.At(syntax.Ident) {
		m := p.Start()
		p.Bump()
		m.Complete(p, syntax.Name)
		return
	}
	p.ErrRecover("expected a name", recovery)
}

func nameRef(p *Parser) {
	if p.At(syntax.Ident) {
		m := p.Start()
		p.Bump()
		m.Complete(p, syntax.NameRef)
		return
	}
	p.ErrRecover("expected identifier", TokenSet{})
}
