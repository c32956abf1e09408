package parser

import "github.com/dhamidi/greenleaf/syntax"

// restrictions thread context-sensitive rules through expression parsing.
type restrictions struct {
	// forbidStructLit stops `Path {` from starting a struct literal, so
	// that `if x {}` reads the braces as the if body.
	forbidStructLit bool
	// preferStmt ends an expression right after a block-like atom, so that
	// `{1} - 1` in a block is two statements.
	preferStmt bool
}

type blockLike bool

const (
	notBlock blockLike = false
	isBlock  blockLike = true
)

func expr(p *Parser) blockLike {
	_, _, bl := exprBP(p, restrictions{}, 1)
	return bl
}

func exprNoStructLit(p *Parser) {
	exprBP(p, restrictions{forbidStructLit: true}, 1)
}

func exprStmt(p *Parser) (CompletedMarker, bool, blockLike) {
	return exprBP(p, restrictions{preferStmt: true}, 1)
}

func block(p *Parser) {
	if !p.At(syntax.LCurly) {
		p.Error("expected a block")
		return
	}
	m := p.Start()
	p.Bump()
	exprBlockContents(p)
	p.Expect(syntax.RCurly)
	m.Complete(p, syntax.Block)
}

func exprBlockContents(p *Parser) {
	for !p.At(syntax.EOF) && !p.At(syntax.RCurly) {
		if p.Eat(syntax.Semi) {
			continue
		}
		stmt(p)
	}
}

func stmt(p *Parser) {
	m := p.Start()
	hasAttrs := p.At(syntax.Pound)
	outerAttributes(p)

	if p.At(syntax.LetKw) {
		letStmt(p, m)
		return
	}

	m, isItem := maybeItem(p, m)
	if isItem {
		return
	}

	_, ok, bl := exprStmt(p)
	if p.At(syntax.RCurly) {
		if hasAttrs {
			m.Complete(p, syntax.ExprStmt)
		} else {
			m.Abandon(p)
		}
		return
	}
	if ok && bl == isBlock {
		p.Eat(syntax.Semi)
	} else {
		p.Expect(syntax.Semi)
	}
	m.Complete(p, syntax.ExprStmt)
}

func letStmt(p *Parser, m Marker) {
	p.Bump()
	pattern(p)
	if p.At(syntax.Colon) {
		p.Bump()
		typeRef(p)
	}
	if p.Eat(syntax.Eq) {
		expr(p)
	}
	p.Expect(syntax.Semi)
	m.Complete(p, syntax.LetStmt)
}

// binOp is one row of the binding power table. Operators spelled by more
// than one lexer token are fused with BumpCompound.
type binOp struct {
	tokens []syntax.Kind
	fused  syntax.Kind
	bp     int
	node   syntax.Kind
}

// binOps is ordered so that longer operators are tried first.
var binOps = []binOp{
	{[]syntax.Kind{syntax.LAngle, syntax.LAngle, syntax.Eq}, syntax.ShlEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.RAngle, syntax.RAngle, syntax.Eq}, syntax.ShrEq, 1, syntax.BinExpr},

	{[]syntax.Kind{syntax.Plus, syntax.Eq}, syntax.PlusEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Minus, syntax.Eq}, syntax.MinusEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Star, syntax.Eq}, syntax.StarEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Slash, syntax.Eq}, syntax.SlashEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Percent, syntax.Eq}, syntax.PercentEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Pipe, syntax.Eq}, syntax.PipeEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Amp, syntax.Eq}, syntax.AmpEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.Caret, syntax.Eq}, syntax.CaretEq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.DotDot, syntax.Eq}, syntax.DotDotEq, 2, syntax.RangeExpr},
	{[]syntax.Kind{syntax.Pipe, syntax.Pipe}, syntax.PipePipe, 3, syntax.BinExpr},
	{[]syntax.Kind{syntax.Amp, syntax.Amp}, syntax.AmpAmp, 4, syntax.BinExpr},
	{[]syntax.Kind{syntax.LAngle, syntax.Eq}, syntax.LtEq, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.RAngle, syntax.Eq}, syntax.GtEq, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.LAngle, syntax.LAngle}, syntax.Shl, 9, syntax.BinExpr},
	{[]syntax.Kind{syntax.RAngle, syntax.RAngle}, syntax.Shr, 9, syntax.BinExpr},

	{[]syntax.Kind{syntax.Eq}, syntax.Eq, 1, syntax.BinExpr},
	{[]syntax.Kind{syntax.DotDot}, syntax.DotDot, 2, syntax.RangeExpr},
	{[]syntax.Kind{syntax.EqEq}, syntax.EqEq, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.Neq}, syntax.Neq, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.LAngle}, syntax.LAngle, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.RAngle}, syntax.RAngle, 5, syntax.BinExpr},
	{[]syntax.Kind{syntax.Pipe}, syntax.Pipe, 6, syntax.BinExpr},
	{[]syntax.Kind{syntax.Caret}, syntax.Caret, 7, syntax.BinExpr},
	{[]syntax.Kind{syntax.Amp}, syntax.Amp, 8, syntax.BinExpr},
	{[]syntax.Kind{syntax.Plus}, syntax.Plus, 10, syntax.BinExpr},
	{[]syntax.Kind{syntax.Minus}, syntax.Minus, 10, syntax.BinExpr},
	{[]syntax.Kind{syntax.Star}, syntax.Star, 11, syntax.BinExpr},
	{[]syntax.Kind{syntax.Slash}, syntax.Slash, 11, syntax.BinExpr},
	{[]syntax.Kind{syntax.Percent}, syntax.Percent, 11, syntax.BinExpr},
}

// currentOp finds the binary operator at the current position. The zero
// binOp, with binding power 0, means there is none.
func currentOp(p *Parser) binOp {
	for _, op := range binOps {
		switch len(op.tokens) {
		case 1:
			if p.At(op.tokens[0]) {
				return op
			}
		case 2:
			if p.At2(op.tokens[0], op.tokens[1]) {
				return op
			}
		case 3:
			if p.At3(op.tokens[0], op.tokens[1], op.tokens[2]) {
				return op
			}
		}
	}
	return binOp{}
}

func bumpOp(p *Parser, op binOp) {
	if len(op.tokens) == 1 {
		p.Bump()
		return
	}
	p.BumpCompound(op.fused, len(op.tokens))
}

// exprBP parses an expression whose operators all bind at least as tightly
// as bp. Left associativity comes from recursing with op.bp+1.
func exprBP(p *Parser, r restrictions, bp int) (CompletedMarker, bool, blockLike) {
	lhs, ok, bl := lhsExpr(p, r)
	if !ok {
		return CompletedMarker{}, false, notBlock
	}
	if r.preferStmt && bl == isBlock {
		return lhs, true, isBlock
	}

	for {
		op := currentOp(p)
		if op.bp == 0 || op.bp < bp {
			break
		}
		m := lhs.Precede(p)
		bumpOp(p, op)
		exprBP(p, r, op.bp+1)
		lhs = m.Complete(p, op.node)
	}
	return lhs, true, notBlock
}

const prefixBP = 255

func lhsExpr(p *Parser, r restrictions) (CompletedMarker, bool, blockLike) {
	var m Marker
	var kind syntax.Kind

	switch p.Current() {
	case syntax.Amp:
		m = p.Start()
		p.Bump()
		p.Eat(syntax.MutKw)
		kind = syntax.RefExpr
	case syntax.Star, syntax.Excl, syntax.Minus:
		m = p.Start()
		p.Bump()
		kind = syntax.PrefixExpr
	case syntax.DotDot:
		m = p.Start()
		if p.At2(syntax.DotDot, syntax.Eq) {
			p.BumpCompound(syntax.DotDotEq, 2)
		} else {
			p.Bump()
		}
		if p.AtSet(exprFirst) {
			exprBP(p, r, 2)
		}
		return m.Complete(p, syntax.RangeExpr), true, notBlock
	default:
		atom, ok, bl := atomExpr(p, r)
		if !ok {
			return CompletedMarker{}, false, notBlock
		}
		allowCalls := !(r.preferStmt && bl == isBlock)
		return postfixExpr(p, atom, allowCalls), true, bl
	}

	exprBP(p, r, prefixBP)
	return m.Complete(p, kind), true, notBlock
}

func postfixExpr(p *Parser, lhs CompletedMarker, allowCalls bool) CompletedMarker {
	for {
		switch {
		case p.At(syntax.LParen) && allowCalls:
			lhs = callExpr(p, lhs)
		case p.At(syntax.LBrack) && allowCalls:
			lhs = indexExpr(p, lhs)
		case p.At(syntax.Dot) && p.Nth(1) == syntax.Ident &&
			(p.Nth(2) == syntax.LParen || p.Nth(2) == syntax.ColonColon):
			lhs = methodCallExpr(p, lhs)
		case p.At(syntax.Dot):
			lhs = fieldExpr(p, lhs)
		case p.At(syntax.DotDot) && !p.At2(syntax.DotDot, syntax.Eq) && !exprFirst.Contains(p.Nth(1)):
			m := lhs.Precede(p)
			p.Bump()
			lhs = m.Complete(p, syntax.RangeExpr)
		case p.At(syntax.Question):
			m := lhs.Precede(p)
			p.Bump()
			lhs = m.Complete(p, syntax.TryExpr)
		case p.At(syntax.AsKw):
			m := lhs.Precede(p)
			p.Bump()
			typeNoBounds(p)
			lhs = m.Complete(p, syntax.CastExpr)
		default:
			return lhs
		}
		allowCalls = true
	}
}

func callExpr(p *Parser, lhs CompletedMarker) CompletedMarker {
	m := lhs.Precede(p)
	argList(p)
	return m.Complete(p, syntax.CallExpr)
}

func indexExpr(p *Parser, lhs CompletedMarker) CompletedMarker {
	m := lhs.Precede(p)
	p.Bump()
	expr(p)
	p.Expect(syntax.RBrack)
	return m.Complete(p, syntax.IndexExpr)
}

func methodCallExpr(p *Parser, lhs CompletedMarker) CompletedMarker {
	m := lhs.Precede(p)
	p.Bump()
	nameRef(p)
	typeArgList(p, true)
	if p.At(syntax.LParen) {
		argList(p)
	}
	return m.Complete(p, syntax.MethodCallExpr)
}

// fieldExpr parses `.name` and `.0`. A float after the dot, as in `x.0.1`,
// is a single lexer token and is reported rather than split.
func fieldExpr(p *Parser, lhs CompletedMarker) CompletedMarker {
	m := lhs.Precede(p)
	p.Bump()
	switch {
	case p.At(syntax.Ident):
		nameRef(p)
	case p.At(syntax.IntNumber):
		p.Bump()
	case p.At(syntax.FloatNumber):
		p.ErrAndBump("tuple index must be an integer")
	default:
		p.Error("expected field name or number")
	}
	return m.Complete(p, syntax.FieldExpr)
}

func argList(p *Parser) {
	m := p.Start()
	p.Bump()
	for !p.At(syntax.RParen) && !p.At(syntax.EOF) {
		if !p.AtSet(exprFirst) {
			p.Error("expected expression")
			break
		}
		expr(p)
		if !p.At(syntax.RParen) && !p.Expect(syntax.Comma) {
			break
		}
	}
	p.Expect(syntax.RParen)
	m.Complete(p, syntax.ArgList)
}
