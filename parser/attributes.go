package parser

import "github.com/dhamidi/greenleaf/syntax"

func outerAttributes(p *Parser) {
	for p.At(syntax.Pound) {
		attribute(p)
	}
}

func attribute(p *Parser) {
	m := p.Start()
	p.Bump()
	if p.At(syntax.LBrack) {
		tokenTree(p)
	} else {
		p.Error("expected `[`")
	}
	m.Complete(p, syntax.Attr)
}

// macroCallAfterPath parses the `!` and token tree of a macro invocation.
// A `macro_rules! name { ... }` style name between the two is accepted.
func macroCallAfterPath(p *Parser) blockLike {
	p.Expect(syntax.Excl)
	if p.At(syntax.Ident) {
		name(p, TokenSet{})
	}
	switch p.Current() {
	case syntax.LCurly:
		tokenTree(p)
		return isBlock
	case syntax.LParen, syntax.LBrack:
		tokenTree(p)
	default:
		p.Error("expected `{`, `[`, `(`")
	}
	return notBlock
}

var closingDelimiter = map[syntax.Kind]syntax.Kind{
	syntax.LParen: syntax.RParen,
	syntax.LCurly: syntax.RCurly,
	syntax.LBrack: syntax.RBrack,
}

func tokenTree(p *Parser) {
	closing, ok := closingDelimiter[p.Current()]
	if !ok {
		p.Error("expected a delimited token tree")
		return
	}
	m := p.Start()
	p.Bump()
	for !p.At(syntax.EOF) && !p.At(closing) {
		switch p.Current() {
		case syntax.LParen, syntax.LCurly, syntax.LBrack:
			tokenTree(p)
		case syntax.RCurly:
			p.Error("unmatched `}`")
			m.Complete(p, syntax.TokenTree)
			return
		case syntax.RParen, syntax.RBrack:
			p.ErrAndBump("unmatched brace")
		default:
			p.Bump()
		}
	}
	p.Expect(closing)
	m.Complete(p, syntax.TokenTree)
}
