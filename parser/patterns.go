package parser

import "github.com/dhamidi/greenleaf/syntax"

var patternFirst = literalFirst.Union(pathFirst).Union(NewTokenSet(
	syntax.Minus, syntax.Underscore, syntax.Amp, syntax.LParen, syntax.LBrack,
	syntax.RefKw, syntax.MutKw, syntax.DotDot,
))

var patRecoverySet = NewTokenSet(
	syntax.LetKw, syntax.IfKw, syntax.WhileKw, syntax.LoopKw, syntax.MatchKw,
	syntax.RParen, syntax.Comma,
)

func pattern(p *Parser) {
	cm, ok := atomPat(p)
	if !ok {
		return
	}
	switch {
	case p.At(syntax.DotDotDot):
		m := cm.Precede(p)
		p.Bump()
		atomPat(p)
		m.Complete(p, syntax.RangePat)
	case p.At2(syntax.DotDot, syntax.Eq):
		m := cm.Precede(p)
		p.BumpCompound(syntax.DotDotEq, 2)
		atomPat(p)
		m.Complete(p, syntax.RangePat)
	}
}

func atomPat(p *Parser) (CompletedMarker, bool) {
	if p.At(syntax.Ident) {
		switch p.Nth(1) {
		case syntax.ColonColon, syntax.LParen, syntax.LCurly:
			return pathPat(p), true
		}
		return bindPat(p, true), true
	}
	if isPathStart(p) {
		return pathPat(p), true
	}
	if p.At(syntax.Minus) || p.AtSet(literalFirst) {
		return literalPat(p), true
	}

	m := p.Start()
	switch p.Current() {
	case syntax.Underscore:
		p.Bump()
		return m.Complete(p, syntax.PlaceholderPat), true
	case syntax.Amp:
		p.Bump()
		p.Eat(syntax.MutKw)
		pattern(p)
		return m.Complete(p, syntax.RefPat), true
	case syntax.LParen:
		patList(p, syntax.RParen)
		return m.Complete(p, syntax.TuplePat), true
	case syntax.LBrack:
		patList(p, syntax.RBrack)
		return m.Complete(p, syntax.SlicePat), true
	case syntax.RefKw, syntax.MutKw:
		m.Abandon(p)
		return bindPat(p, true), true
	}
	m.Abandon(p)
	p.ErrRecover("expected pattern", patRecoverySet)
	return CompletedMarker{}, false
}

func pathPat(p *Parser) CompletedMarker {
	m := p.Start()
	exprPath(p)
	switch p.Current() {
	case syntax.LParen:
		patList(p, syntax.RParen)
		return m.Complete(p, syntax.TupleStructPat)
	case syntax.LCurly:
		fieldPatList(p)
		return m.Complete(p, syntax.StructPat)
	}
	return m.Complete(p, syntax.PathPat)
}

func literalPat(p *Parser) CompletedMarker {
	m := p.Start()
	p.Eat(syntax.Minus)
	if _, ok := literal(p); !ok {
		p.Error("expected literal")
	}
	return m.Complete(p, syntax.LiteralPat)
}

func bindPat(p *Parser, withAt bool) CompletedMarker {
	m := p.Start()
	p.Eat(syntax.RefKw)
	p.Eat(syntax.MutKw)
	name(p, TokenSet{})
	if withAt && p.Eat(syntax.At) {
		pattern(p)
	}
	return m.Complete(p, syntax.BindPat)
}

// patList parses the parenthesised or bracketed patterns of tuple, tuple
// struct and slice patterns, `..` included.
func patList(p *Parser, ket syntax.Kind) {
	p.Bump()
	for !p.At(syntax.EOF) && !p.At(ket) {
		if p.At(syntax.DotDot) {
			p.Bump()
		} else {
			if !p.AtSet(patternFirst) {
				p.Error("expected a pattern")
				break
			}
			pattern(p)
		}
		if !p.At(ket) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(ket)
}

func fieldPatList(p *Parser) {
	m := p.Start()
	p.Bump()
	progress := p.mustProgress()
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		switch {
		case p.At(syntax.DotDot):
			p.Bump()
		case p.At(syntax.Ident) && p.Nth(1) == syntax.Colon:
			f := p.Start()
			nameRef(p)
			p.Bump()
			pattern(p)
			f.Complete(p, syntax.FieldPat)
		case p.At(syntax.LCurly):
			errorBlock(p, "expected ident")
		default:
			bindPat(p, false)
		}
		if !p.At(syntax.RCurly) {
			p.Expect(syntax.Comma)
		}
		if !progress() {
			break
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.FieldPatList)
}
