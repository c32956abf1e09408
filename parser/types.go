package parser

import "github.com/dhamidi/greenleaf/syntax"

var typeFirst = pathFirst.Union(NewTokenSet(
	syntax.LParen, syntax.LBrack, syntax.Excl, syntax.Star, syntax.Underscore,
	syntax.Amp, syntax.FnKw, syntax.ImplKw, syntax.DynKw,
))

var typeRecoverySet = NewTokenSet(syntax.RParen, syntax.Comma)

func typeRef(p *Parser) {
	typeWithBounds(p, true)
}

// typeNoBounds parses a type that may not be followed by `+ Bound`, as in
// cast targets and return types.
func typeNoBounds(p *Parser) {
	typeWithBounds(p, false)
}

func typeWithBounds(p *Parser, allowBounds bool) {
	switch p.Current() {
	case syntax.LParen:
		parenOrTupleType(p)
	case syntax.Excl:
		m := p.Start()
		p.Bump()
		m.Complete(p, syntax.NeverType)
	case syntax.Star:
		pointerType(p)
	case syntax.LBrack:
		arrayOrSliceType(p)
	case syntax.Amp:
		referenceType(p)
	case syntax.Underscore:
		m := p.Start()
		p.Bump()
		m.Complete(p, syntax.PlaceholderType)
	case syntax.FnKw:
		fnPointerType(p)
	case syntax.ImplKw:
		traitObjectType(p, syntax.ImplTraitType, allowBounds)
	case syntax.DynKw:
		traitObjectType(p, syntax.DynTraitType, allowBounds)
	default:
		if isPathStart(p) {
			m := p.Start()
			typePath(p)
			m.Complete(p, syntax.PathType)
			return
		}
		p.ErrRecover("expected type", typeRecoverySet)
	}
}

func parenOrTupleType(p *Parser) {
	m := p.Start()
	p.Bump()
	n := 0
	trailingComma := false
	for !p.At(syntax.EOF) && !p.At(syntax.RParen) {
		if !p.AtSet(typeFirst) {
			p.Error("expected type")
			break
		}
		n++
		typeRef(p)
		if !p.Eat(syntax.Comma) {
			trailingComma = false
			break
		}
		trailingComma = true
	}
	p.Expect(syntax.RParen)
	if n == 1 && !trailingComma {
		m.Complete(p, syntax.ParenType)
		return
	}
	m.Complete(p, syntax.TupleType)
}

func pointerType(p *Parser) {
	m := p.Start()
	p.Bump()
	if p.At(syntax.MutKw) || p.At(syntax.ConstKw) {
		p.Bump()
	} else {
		p.Error("expected mut or const in raw pointer type")
	}
	typeNoBounds(p)
	m.Complete(p, syntax.PointerType)
}

func arrayOrSliceType(p *Parser) {
	m := p.Start()
	p.Bump()
	typeRef(p)
	switch {
	case p.Eat(syntax.RBrack):
		m.Complete(p, syntax.SliceType)
	case p.Eat(syntax.Semi):
		expr(p)
		p.Expect(syntax.RBrack)
		m.Complete(p, syntax.ArrayType)
	default:
		p.Error("expected `;` or `]`")
		m.Complete(p, syntax.SliceType)
	}
}

func referenceType(p *Parser) {
	m := p.Start()
	p.Bump()
	p.Eat(syntax.Lifetime)
	p.Eat(syntax.MutKw)
	typeNoBounds(p)
	m.Complete(p, syntax.ReferenceType)
}

func fnPointerType(p *Parser) {
	m := p.Start()
	p.Bump()
	if p.At(syntax.LParen) {
		paramListOf(p, fnPointerParams)
	} else {
		p.Error("expected parameters")
	}
	optRetType(p)
	m.Complete(p, syntax.FnPointerType)
}

func traitObjectType(p *Parser, kind syntax.Kind, allowBounds bool) {
	m := p.Start()
	p.Bump()
	if allowBounds {
		boundsWithoutColon(p)
	} else {
		b := p.Start()
		typeBound(p)
		b.Complete(p, syntax.TypeBoundList)
	}
	m.Complete(p, kind)
}
