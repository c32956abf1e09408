package parser

import "github.com/dhamidi/greenleaf/syntax"

var literalFirst = NewTokenSet(
	syntax.TrueKw, syntax.FalseKw, syntax.IntNumber, syntax.FloatNumber,
	syntax.CharLit, syntax.StringLit,
)

var atomExprFirst = literalFirst.Union(pathFirst).Union(NewTokenSet(
	syntax.LParen, syntax.LCurly, syntax.LBrack, syntax.Pipe, syntax.MoveKw,
	syntax.IfKw, syntax.WhileKw, syntax.MatchKw, syntax.LoopKw, syntax.ForKw,
	syntax.ReturnKw, syntax.BreakKw, syntax.ContinueKw,
))

var exprFirst = atomExprFirst.Union(NewTokenSet(
	syntax.Amp, syntax.Star, syntax.Excl, syntax.DotDot, syntax.Minus,
))

var exprRecoverySet = NewTokenSet(syntax.LetKw)

func literal(p *Parser) (CompletedMarker, bool) {
	if !p.AtSet(literalFirst) {
		return CompletedMarker{}, false
	}
	m := p.Start()
	p.Bump()
	return m.Complete(p, syntax.Literal), true
}

func atomExpr(p *Parser, r restrictions) (CompletedMarker, bool, blockLike) {
	if cm, ok := literal(p); ok {
		return cm, true, notBlock
	}
	if isPathStart(p) {
		return pathExpr(p, r)
	}

	var done CompletedMarker
	switch p.Current() {
	case syntax.LParen:
		done = tupleExpr(p)
	case syntax.LBrack:
		done = arrayExpr(p)
	case syntax.Pipe:
		done = lambdaExpr(p)
	case syntax.MoveKw:
		if p.Nth(1) != syntax.Pipe {
			p.ErrAndBump("expected closure after `move`")
			return CompletedMarker{}, false, notBlock
		}
		done = lambdaExpr(p)
	case syntax.IfKw:
		done = ifExpr(p)
	case syntax.LoopKw:
		done = loopExpr(p)
	case syntax.ForKw:
		done = forExpr(p)
	case syntax.WhileKw:
		done = whileExpr(p)
	case syntax.MatchKw:
		done = matchExpr(p)
	case syntax.LCurly:
		done = blockExpr(p)
	case syntax.ReturnKw:
		done = returnExpr(p)
	case syntax.BreakKw:
		done = breakExpr(p, r)
	case syntax.ContinueKw:
		done = continueExpr(p)
	default:
		p.ErrRecover("expected expression", exprRecoverySet)
		return CompletedMarker{}, false, notBlock
	}

	switch done.Kind() {
	case syntax.IfExpr, syntax.WhileExpr, syntax.ForExpr, syntax.LoopExpr,
		syntax.MatchExpr, syntax.BlockExpr:
		return done, true, isBlock
	}
	return done, true, notBlock
}

// pathExpr parses a path and whatever it heads: a struct literal, a macro
// call, or nothing.
func pathExpr(p *Parser, r restrictions) (CompletedMarker, bool, blockLike) {
	m := p.Start()
	exprPath(p)
	switch {
	case p.At(syntax.LCurly) && !r.forbidStructLit:
		namedFieldList(p)
		return m.Complete(p, syntax.StructLit), true, notBlock
	case p.At(syntax.Excl):
		bl := macroCallAfterPath(p)
		return m.Complete(p, syntax.MacroCall), true, bl
	}
	return m.Complete(p, syntax.PathExpr), true, notBlock
}

func namedFieldList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		switch p.Current() {
		case syntax.Ident, syntax.Pound:
			f := p.Start()
			outerAttributes(p)
			nameRef(p)
			if p.Eat(syntax.Colon) {
				expr(p)
			}
			f.Complete(p, syntax.NamedField)
		case syntax.DotDot:
			p.Bump()
			expr(p)
		case syntax.LCurly:
			errorBlock(p, "expected a field")
		default:
			p.ErrAndBump("expected identifier")
		}
		if !p.At(syntax.RCurly) {
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.NamedFieldList)
}

func tupleExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	sawExpr, sawComma := false, false
	for !p.At(syntax.EOF) && !p.At(syntax.RParen) {
		if !p.AtSet(exprFirst) {
			p.Error("expected expression")
			break
		}
		sawExpr = true
		expr(p)
		if !p.At(syntax.RParen) {
			sawComma = true
			p.Expect(syntax.Comma)
		}
	}
	p.Expect(syntax.RParen)
	if sawExpr && !sawComma {
		return m.Complete(p, syntax.ParenExpr)
	}
	return m.Complete(p, syntax.TupleExpr)
}

func arrayExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	if p.Eat(syntax.RBrack) {
		return m.Complete(p, syntax.ArrayExpr)
	}
	expr(p)
	if p.Eat(syntax.Semi) {
		expr(p)
		p.Expect(syntax.RBrack)
		return m.Complete(p, syntax.ArrayExpr)
	}
	for !p.At(syntax.EOF) && !p.At(syntax.RBrack) {
		p.Expect(syntax.Comma)
		if p.At(syntax.RBrack) {
			break
		}
		if !p.AtSet(exprFirst) {
			p.Error("expected expression")
			break
		}
		expr(p)
	}
	p.Expect(syntax.RBrack)
	return m.Complete(p, syntax.ArrayExpr)
}

func lambdaExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Eat(syntax.MoveKw)
	paramListOf(p, closureParams)
	if p.At(syntax.ThinArrow) {
		optRetType(p)
		block(p)
	} else if p.AtSet(exprFirst) {
		expr(p)
	} else {
		p.Error("expected expression")
	}
	return m.Complete(p, syntax.LambdaExpr)
}

func ifExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	condition(p)
	block(p)
	if p.Eat(syntax.ElseKw) {
		if p.At(syntax.IfKw) {
			ifExpr(p)
		} else {
			block(p)
		}
	}
	return m.Complete(p, syntax.IfExpr)
}

func condition(p *Parser) {
	m := p.Start()
	if p.Eat(syntax.LetKw) {
		pattern(p)
		p.Expect(syntax.Eq)
	}
	exprNoStructLit(p)
	m.Complete(p, syntax.Condition)
}

func loopExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	block(p)
	return m.Complete(p, syntax.LoopExpr)
}

func whileExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	condition(p)
	block(p)
	return m.Complete(p, syntax.WhileExpr)
}

func forExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	pattern(p)
	p.Expect(syntax.InKw)
	exprNoStructLit(p)
	block(p)
	return m.Complete(p, syntax.ForExpr)
}

func matchExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	exprNoStructLit(p)
	if p.At(syntax.LCurly) {
		matchArmList(p)
	} else {
		p.Error("expected `{`")
	}
	return m.Complete(p, syntax.MatchExpr)
}

func matchArmList(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected `{`")
		return
	}
	m := p.Start()
	p.Bump()
	progress := p.mustProgress()
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		if p.At(syntax.LCurly) {
			errorBlock(p, "expected match arm")
			continue
		}
		bl := matchArm(p)
		if !p.At(syntax.RCurly) {
			if bl == isBlock {
				p.Eat(syntax.Comma)
			} else {
				p.Expect(syntax.Comma)
			}
		}
		if !progress() {
			p.ErrAndBump("expected match arm")
		}
	}
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.MatchArmList)
}

func matchArm(p *Parser) blockLike {
	m := p.Start()
	outerAttributes(p)
	p.Eat(syntax.Pipe)
	pattern(p)
	for p.Eat(syntax.Pipe) {
		pattern(p)
	}
	if p.At(syntax.IfKw) {
		g := p.Start()
		p.Bump()
		expr(p)
		g.Complete(p, syntax.MatchGuard)
	}
	p.Expect(syntax.FatArrow)
	_, _, bl := exprStmt(p)
	m.Complete(p, syntax.MatchArm)
	return bl
}

func blockExpr(p *Parser) CompletedMarker {
	m := p.Start()
	block(p)
	return m.Complete(p, syntax.BlockExpr)
}

func returnExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	if p.AtSet(exprFirst) {
		expr(p)
	}
	return m.Complete(p, syntax.ReturnExpr)
}

func breakExpr(p *Parser, r restrictions) CompletedMarker {
	m := p.Start()
	p.Bump()
	if p.AtSet(exprFirst) && !(r.forbidStructLit && p.At(syntax.LCurly)) {
		expr(p)
	}
	return m.Complete(p, syntax.BreakExpr)
}

func continueExpr(p *Parser) CompletedMarker {
	m := p.Start()
	p.Bump()
	return m.Complete(p, syntax.ContinueExpr)
}
