package parser

import "github.com/dhamidi/greenleaf/syntax"

var itemRecoverySet = NewTokenSet(
	syntax.FnKw, syntax.StructKw, syntax.EnumKw, syntax.ImplKw, syntax.TraitKw,
	syntax.ConstKw, syntax.StaticKw, syntax.LetKw, syntax.ModKw, syntax.PubKw,
	syntax.UseKw, syntax.TypeKw, syntax.Semi,
)

var nameRecoverySet = itemRecoverySet.Union(NewTokenSet(syntax.LParen, syntax.LAngle))

func modContents(p *Parser, stopOnRCurly bool) {
	for !p.At(syntax.EOF) && !(stopOnRCurly && p.At(syntax.RCurly)) {
		item(p, stopOnRCurly)
	}
}

func itemList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	modContents(p, true)
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.ItemList)
}

func item(p *Parser, stopOnRCurly bool) {
	m := p.Start()
	outerAttributes(p)
	m, ok := maybeItem(p, m)
	if ok {
		if p.At(syntax.Semi) {
			p.ErrAndBump("expected item, found `;`")
		}
		return
	}

	if p.At(syntax.Ident) && p.Nth(1) == syntax.Excl {
		path(p, exprPaths)
		if macroCallAfterPath(p) == notBlock {
			p.Expect(syntax.Semi)
		}
		m.Complete(p, syntax.MacroCall)
		return
	}

	m.Abandon(p)
	switch {
	case p.At(syntax.LCurly):
		errorBlock(p, "expected an item")
	case p.At(syntax.RCurly) && !stopOnRCurly:
		e := p.Start()
		p.Error("unmatched `}`")
		p.Bump()
		e.Complete(p, syntax.Error)
	case !p.At(syntax.EOF) && !p.At(syntax.RCurly):
		p.ErrAndBump("expected an item")
	default:
		p.Error("expected an item")
	}
}

// maybeItem parses an item if one starts here, completing m around it.
// Otherwise m is handed back untouched.
func maybeItem(p *Parser, m Marker) (Marker, bool) {
	hasVis := optVisibility(p)

	switch {
	case p.At(syntax.FnKw):
		fnDef(p)
		m.Complete(p, syntax.FnDef)
	case p.At(syntax.ConstKw) && p.Nth(1) == syntax.FnKw:
		p.Bump()
		fnDef(p)
		m.Complete(p, syntax.FnDef)
	case p.At(syntax.StructKw):
		structDef(p, syntax.StructKw)
		m.Complete(p, syntax.StructDef)
	case p.AtContextualKw("union") && p.Nth(1) == syntax.Ident:
		structDef(p, syntax.UnionKw)
		m.Complete(p, syntax.UnionDef)
	case p.At(syntax.EnumKw):
		enumDef(p)
		m.Complete(p, syntax.EnumDef)
	case p.At(syntax.TraitKw):
		traitDef(p)
		m.Complete(p, syntax.TraitDef)
	case p.At(syntax.ImplKw):
		implBlock(p)
		m.Complete(p, syntax.ImplBlock)
	case p.At(syntax.UseKw):
		useItem(p)
		m.Complete(p, syntax.UseItem)
	case p.At(syntax.ModKw):
		modItem(p)
		m.Complete(p, syntax.Module)
	case p.At(syntax.ConstKw):
		constOrStatic(p)
		m.Complete(p, syntax.ConstDef)
	case p.At(syntax.StaticKw):
		constOrStatic(p)
		m.Complete(p, syntax.StaticDef)
	case p.At(syntax.TypeKw):
		typeAlias(p)
		m.Complete(p, syntax.TypeAliasDef)
	default:
		if hasVis {
			p.Error("expected an item")
			m.Complete(p, syntax.Error)
			return Marker{}, true
		}
		return m, false
	}
	return Marker{}, true
}

func optVisibility(p *Parser) bool {
	if !p.At(syntax.PubKw) {
		return false
	}
	m := p.Start()
	p.Bump()
	if p.At(syntax.LParen) && p.Nth(2) == syntax.RParen {
		switch p.Nth(1) {
		case syntax.CrateKw, syntax.SelfKw, syntax.SuperKw:
			p.Bump()
			p.Bump()
			p.Bump()
		}
	}
	m.Complete(p, syntax.Visibility)
	return true
}

func fnDef(p *Parser) {
	p.Bump()
	name(p, nameRecoverySet)
	optTypeParamList(p)
	if p.At(syntax.LParen) {
		paramListOf(p, fnDefParams)
	} else {
		p.Error("expected function arguments")
	}
	optRetType(p)
	optWhereClause(p)
	if !p.Eat(syntax.Semi) {
		block(p)
	}
}

func structDef(p *Parser, kw syntax.Kind) {
	if kw == syntax.UnionKw {
		p.BumpRemap(syntax.UnionKw)
	} else {
		p.Bump()
	}
	name(p, itemRecoverySet)
	optTypeParamList(p)

	switch {
	case p.At(syntax.WhereKw):
		optWhereClause(p)
		switch {
		case p.At(syntax.Semi) && kw == syntax.StructKw:
			p.Bump()
		case p.At(syntax.LCurly):
			namedFieldDefList(p)
		default:
			p.Error("expected `;` or `{`")
		}
	case p.At(syntax.Semi) && kw == syntax.StructKw:
		p.Bump()
	case p.At(syntax.LCurly):
		namedFieldDefList(p)
	case p.At(syntax.LParen) && kw == syntax.StructKw:
		posFieldDefList(p)
		optWhereClause(p)
		p.Expect(syntax.Semi)
	case kw == syntax.StructKw:
		p.Error("expected `;`, `{`, or `(`")
	default:
		p.Error("expected `{`")
	}
}

func namedFieldDefList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	for !p.At(syntax.RCurly) && !p.At(syntax.EOF) {
		if p.At(syntax.LCurly) {
			errorBlock(p, "expected a field")
			continue
		}
		namedFieldDef(p)
		if !p.At(syntax.RCurly) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.NamedFieldDefList)
}

func namedFieldDef(p *Parser) {
	m := p.Start()
	outerAttributes(p)
	optVisibility(p)
	if !p.At(syntax.Ident) {
		m.Abandon(p)
		p.ErrRecover("expected field declaration", TokenSet{})
		return
	}
	name(p, TokenSet{})
	p.Expect(syntax.Colon)
	typeRef(p)
	m.Complete(p, syntax.NamedFieldDef)
}

func posFieldDefList(p *Parser) {
	m := p.Start()
	p.Bump()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) {
		f := p.Start()
		outerAttributes(p)
		optVisibility(p)
		if !p.AtSet(typeFirst) {
			f.Abandon(p)
			p.Error("expected a type")
			break
		}
		typeRef(p)
		f.Complete(p, syntax.PosFieldDef)
		if !p.At(syntax.RParen) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(syntax.RParen)
	m.Complete(p, syntax.PosFieldDefList)
}

func enumDef(p *Parser) {
	p.Bump()
	name(p, itemRecoverySet)
	optTypeParamList(p)
	optWhereClause(p)
	if p.At(syntax.LCurly) {
		enumVariantList(p)
	} else {
		p.Error("expected `{`")
	}
}

func enumVariantList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		if p.At(syntax.LCurly) {
			errorBlock(p, "expected enum variant")
			continue
		}
		v := p.Start()
		outerAttributes(p)
		if p.At(syntax.Ident) {
			name(p, TokenSet{})
			switch p.Current() {
			case syntax.LCurly:
				namedFieldDefList(p)
			case syntax.LParen:
				posFieldDefList(p)
			case syntax.Eq:
				p.Bump()
				expr(p)
			}
			v.Complete(p, syntax.EnumVariant)
		} else {
			v.Abandon(p)
			p.ErrRecover("expected enum variant", TokenSet{})
		}
		if !p.At(syntax.RCurly) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.EnumVariantList)
}

func traitDef(p *Parser) {
	p.Bump()
	name(p, itemRecoverySet)
	optTypeParamList(p)
	if p.At(syntax.Colon) {
		bounds(p)
	}
	optWhereClause(p)
	if p.At(syntax.LCurly) {
		itemList(p)
	} else {
		p.Error("expected `{`")
	}
}

func implBlock(p *Parser) {
	p.Bump()
	optTypeParamList(p)
	p.Eat(syntax.Excl)
	typeRef(p)
	if p.Eat(syntax.ForKw) {
		typeRef(p)
	}
	optWhereClause(p)
	if p.At(syntax.LCurly) {
		itemList(p)
	} else {
		p.Error("expected `{`")
	}
}

func modItem(p *Parser) {
	p.Bump()
	name(p, itemRecoverySet)
	if p.At(syntax.LCurly) {
		itemList(p)
	} else if !p.Eat(syntax.Semi) {
		p.Error("expected `;` or `{`")
	}
}

func constOrStatic(p *Parser) {
	isStatic := p.At(syntax.StaticKw)
	p.Bump()
	if isStatic {
		p.Eat(syntax.MutKw)
	}
	name(p, itemRecoverySet)
	if p.At(syntax.Colon) {
		p.Bump()
		typeRef(p)
	} else {
		p.Error("missing type for `const` or `static`")
	}
	if p.Eat(syntax.Eq) {
		expr(p)
	}
	p.Expect(syntax.Semi)
}

func typeAlias(p *Parser) {
	p.Bump()
	name(p, itemRecoverySet)
	optTypeParamList(p)
	if p.At(syntax.Colon) {
		bounds(p)
	}
	optWhereClause(p)
	if p.Eat(syntax.Eq) {
		typeRef(p)
	}
	p.Expect(syntax.Semi)
}

func useItem(p *Parser) {
	p.Bump()
	useTree(p)
	p.Expect(syntax.Semi)
}

func useTree(p *Parser) {
	m := p.Start()
	switch {
	case p.At(syntax.Star):
		p.Bump()
	case p.At(syntax.ColonColon) && p.Nth(1) == syntax.Star:
		p.Bump()
		p.Bump()
	case p.At(syntax.LCurly):
		useTreeList(p)
	case p.At(syntax.ColonColon) && p.Nth(1) == syntax.LCurly:
		p.Bump()
		useTreeList(p)
	case isPathStart(p):
		path(p, usePaths)
		switch {
		case p.At(syntax.AsKw):
			a := p.Start()
			p.Bump()
			name(p, TokenSet{})
			a.Complete(p, syntax.Alias)
		case p.At(syntax.ColonColon):
			p.Bump()
			switch {
			case p.At(syntax.Star):
				p.Bump()
			case p.At(syntax.LCurly):
				useTreeList(p)
			default:
				p.Error("expected `{` or `*`")
			}
		}
	default:
		m.Abandon(p)
		p.ErrRecover("expected one of `*`, `::`, `{`, `self`, `super` or an identifier", NewTokenSet(syntax.Semi))
		return
	}
	m.Complete(p, syntax.UseTree)
}

func useTreeList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	progress := p.mustProgress()
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		useTree(p)
		if !p.At(syntax.RCurly) {
			p.Expect(syntax.Comma)
		}
		if !progress() {
			break
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.UseTreeList)
}
