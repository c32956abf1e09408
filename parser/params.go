package parser

import "github.com/dhamidi/greenleaf/syntax"

type paramFlavor int

const (
	fnDefParams paramFlavor = iota
	fnPointerParams
	closureParams
)

var valueParamFirst = patternFirst.Union(typeFirst)

// paramRecoverySet holds tokens that end a broken parameter list instead
// of being swallowed as junk parameters.
var paramRecoverySet = NewTokenSet(
	syntax.LCurly, syntax.RCurly, syntax.Semi, syntax.ThinArrow, syntax.WhereKw,
)

func paramListOf(p *Parser, flavor paramFlavor) {
	bra, ket := syntax.LParen, syntax.RParen
	if flavor == closureParams {
		bra, ket = syntax.Pipe, syntax.Pipe
	}
	if !p.At(bra) {
		p.Error("expected " + bra.Describe())
		return
	}
	m := p.Start()
	p.Bump()
	if flavor == fnDefParams {
		optSelfParam(p)
	}
	for !p.At(syntax.EOF) && !p.At(ket) {
		outerAttributes(p)
		if flavor != closureParams && p.At(syntax.DotDotDot) {
			p.Bump()
			break
		}
		if !p.AtSet(valueParamFirst) {
			if p.At(syntax.Comma) || !p.AtSet(paramRecoverySet) {
				p.ErrAndBump("expected value parameter")
				continue
			}
			p.Error("expected value parameter")
			break
		}
		valueParam(p, flavor)
		if !p.At(ket) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(ket)
	m.Complete(p, syntax.ParamList)
}

func valueParam(p *Parser, flavor paramFlavor) {
	m := p.Start()
	switch flavor {
	case fnDefParams:
		pattern(p)
		if p.At(syntax.Colon) {
			p.Bump()
			typeRef(p)
		} else {
			p.Error("missing type for function parameter")
		}
	case fnPointerParams:
		if (p.At(syntax.Ident) || p.At(syntax.Underscore)) && p.Nth(1) == syntax.Colon {
			pattern(p)
			p.Bump()
		}
		typeRef(p)
	case closureParams:
		pattern(p)
		if p.At(syntax.Colon) {
			p.Bump()
			typeRef(p)
		}
	}
	m.Complete(p, syntax.Param)
}

// optSelfParam parses `self`, `mut self`, `&self`, `&mut self` and their
// lifetime-annotated forms.
func optSelfParam(p *Parser) {
	n := 0
	switch {
	case p.At(syntax.SelfKw):
		n = 1
	case p.At(syntax.MutKw) && p.Nth(1) == syntax.SelfKw:
		n = 2
	case p.At(syntax.Amp) && p.Nth(1) == syntax.SelfKw:
		n = 2
	case p.At(syntax.Amp) && p.Nth(1) == syntax.MutKw && p.Nth(2) == syntax.SelfKw:
		n = 3
	case p.At(syntax.Amp) && p.Nth(1) == syntax.Lifetime && p.Nth(2) == syntax.SelfKw:
		n = 3
	case p.At(syntax.Amp) && p.Nth(1) == syntax.Lifetime && p.Nth(2) == syntax.MutKw && p.Nth(3) == syntax.SelfKw:
		n = 4
	default:
		return
	}
	m := p.Start()
	for i := 0; i < n; i++ {
		p.Bump()
	}
	if p.At(syntax.Colon) {
		p.Bump()
		typeRef(p)
	}
	m.Complete(p, syntax.SelfParam)
	if !p.At(syntax.RParen) {
		p.Expect(syntax.Comma)
	}
}

func optRetType(p *Parser) {
	if !p.At(syntax.ThinArrow) {
		return
	}
	m := p.Start()
	p.Bump()
	typeNoBounds(p)
	m.Complete(p, syntax.RetType)
}
