package parser

import "github.com/dhamidi/greenleaf/syntax"

var pathFirst = NewTokenSet(
	syntax.Ident, syntax.SelfKw, syntax.SuperKw, syntax.CrateKw, syntax.ColonColon,
)

func isPathStart(p *Parser) bool {
	return p.AtSet(pathFirst)
}

// pathMode selects how generic arguments are spelled inside a path.
type pathMode int

const (
	// usePaths take no generic arguments.
	usePaths pathMode = iota
	// typePaths take `<...>` directly.
	typePaths
	// exprPaths need the turbofish `::<...>`.
	exprPaths
)

func exprPath(p *Parser) {
	path(p, exprPaths)
}

func typePath(p *Parser) {
	path(p, typePaths)
}

// path parses `a::b::c` as nested Path nodes, the qualifier innermost.
func path(p *Parser, mode pathMode) {
	if !isPathStart(p) {
		return
	}
	m := p.Start()
	pathSegment(p, mode, true)
	qual := m.Complete(p, syntax.Path)
	for p.At(syntax.ColonColon) {
		// `use a::{b, c}` and `use a::*` end the path at the separator.
		if next := p.Nth(1); next == syntax.Star || next == syntax.LCurly {
			break
		}
		pm := qual.Precede(p)
		p.Bump()
		pathSegment(p, mode, false)
		qual = pm.Complete(p, syntax.Path)
	}
}

func pathSegment(p *Parser, mode pathMode, first bool) {
	m := p.Start()
	if first {
		p.Eat(syntax.ColonColon)
	}
	switch p.Current() {
	case syntax.Ident:
		nameRef(p)
		switch mode {
		case typePaths:
			typeArgList(p, false)
		case exprPaths:
			typeArgList(p, true)
		}
	case syntax.SelfKw, syntax.SuperKw, syntax.CrateKw:
		p.Bump()
	default:
		p.ErrRecover("expected identifier", TokenSet{})
	}
	m.Complete(p, syntax.PathSegment)
}

// typeArgList parses generic arguments. With colonColonRequired only the
// expression form `::<T>` is accepted.
func typeArgList(p *Parser, colonColonRequired bool) {
	var m Marker
	switch {
	case p.At(syntax.ColonColon) && p.Nth(1) == syntax.LAngle:
		m = p.Start()
		p.Bump()
		p.Bump()
	case !colonColonRequired && p.At(syntax.LAngle):
		m = p.Start()
		p.Bump()
	default:
		return
	}
	for !p.At(syntax.EOF) && !p.At(syntax.RAngle) {
		typeArg(p)
		if !p.At(syntax.RAngle) && !p.Expect(syntax.Comma) {
			break
		}
	}
	p.Expect(syntax.RAngle)
	m.Complete(p, syntax.TypeArgList)
}

func typeArg(p *Parser) {
	m := p.Start()
	switch {
	case p.At(syntax.Lifetime):
		p.Bump()
		m.Complete(p, syntax.LifetimeArg)
	case p.At(syntax.Ident) && p.Nth(1) == syntax.Eq:
		nameRef(p)
		p.Bump()
		typeRef(p)
		m.Complete(p, syntax.AssocTypeArg)
	default:
		typeRef(p)
		m.Complete(p, syntax.TypeArg)
	}
}
