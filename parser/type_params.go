package parser

import "github.com/dhamidi/greenleaf/syntax"

func optTypeParamList(p *Parser) {
	if !p.At(syntax.LAngle) {
		return
	}
	m := p.Start()
	p.Bump()
	for !p.At(syntax.EOF) && !p.At(syntax.RAngle) {
		tp := p.Start()
		outerAttributes(p)
		switch p.Current() {
		case syntax.Lifetime:
			p.Bump()
			if p.At(syntax.Colon) {
				lifetimeBounds(p)
			}
			tp.Complete(p, syntax.LifetimeParam)
		case syntax.Ident:
			name(p, TokenSet{})
			if p.At(syntax.Colon) {
				bounds(p)
			}
			if p.Eat(syntax.Eq) {
				typeRef(p)
			}
			tp.Complete(p, syntax.TypeParam)
		default:
			tp.Abandon(p)
			p.ErrRecover("expected type parameter", TokenSet{})
		}
		if !p.At(syntax.RAngle) && !p.Expect(syntax.Comma) {
			break
		}
	}
	p.Expect(syntax.RAngle)
	m.Complete(p, syntax.TypeParamList)
}

func lifetimeBounds(p *Parser) {
	p.Bump()
	for p.At(syntax.Lifetime) {
		p.Bump()
		if !p.Eat(syntax.Plus) {
			break
		}
	}
}

// bounds parses `: A + B`.
func bounds(p *Parser) {
	p.Bump()
	boundsWithoutColon(p)
}

func boundsWithoutColon(p *Parser) {
	m := p.Start()
	for typeBound(p) {
		if !p.Eat(syntax.Plus) {
			break
		}
	}
	m.Complete(p, syntax.TypeBoundList)
}

func typeBound(p *Parser) bool {
	m := p.Start()
	hasParen := p.Eat(syntax.LParen)
	p.Eat(syntax.Question)
	switch {
	case p.At(syntax.Lifetime):
		p.Bump()
	case isPathStart(p):
		typePath(p)
	default:
		m.Abandon(p)
		return false
	}
	if hasParen {
		p.Expect(syntax.RParen)
	}
	m.Complete(p, syntax.TypeBound)
	return true
}

func optWhereClause(p *Parser) {
	if !p.At(syntax.WhereKw) {
		return
	}
	m := p.Start()
	p.Bump()
	for p.At(syntax.Lifetime) || p.AtSet(typeFirst) {
		wherePredicate(p)
		if !p.Eat(syntax.Comma) {
			break
		}
	}
	m.Complete(p, syntax.WhereClause)
}

func wherePredicate(p *Parser) {
	m := p.Start()
	if p.At(syntax.Lifetime) {
		p.Bump()
		if p.At(syntax.Colon) {
			lifetimeBounds(p)
		} else {
			p.Error("expected colon")
		}
	} else {
		typeRef(p)
		if p.At(syntax.Colon) {
			bounds(p)
		} else {
			p.Error("expected colon")
		}
	}
	m.Complete(p, syntax.WherePred)
}
