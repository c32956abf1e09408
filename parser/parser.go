package parser

import (
	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/syntax"
)

// stepLimit bounds the number of lookahead queries in one parse. A grammar
// rule that loops without consuming input trips it instead of hanging.
const stepLimit = 10_000_000

// Parser drives a grammar over a token stream and records the result as a
// flat list of events. It never fails: malformed input produces Error
// events and ERROR nodes, and every token is consumed exactly once.
type Parser struct {
	inp    *input
	pos    int
	events []Event
	steps  int
	open   int
}

func newParser(text string, tokens []lexer.Token) *Parser {
	return &Parser{inp: newInput(text, tokens)}
}

// Current returns the kind of the current significant token.
func (p *Parser) Current() syntax.Kind {
	return p.Nth(0)
}

// Nth looks n significant tokens ahead. Past the end it returns
// syntax.EOF.
func (p *Parser) Nth(n int) syntax.Kind {
	p.steps++
	if p.steps > stepLimit {
		panic("parser: the parser seems stuck")
	}
	return p.inp.kind(p.pos + n)
}

func (p *Parser) At(kind syntax.Kind) bool {
	return p.Nth(0) == kind
}

func (p *Parser) AtSet(set TokenSet) bool {
	return set.Contains(p.Nth(0))
}

// At2 reports whether the next two tokens are k1 and k2 with nothing
// between them, which is how composite operators are recognised.
func (p *Parser) At2(k1, k2 syntax.Kind) bool {
	return p.Nth(0) == k1 && p.Nth(1) == k2 && p.inp.isJoint(p.pos)
}

// At3 is the three-token analogue of At2.
func (p *Parser) At3(k1, k2, k3 syntax.Kind) bool {
	return p.Nth(0) == k1 && p.Nth(1) == k2 && p.Nth(2) == k3 &&
		p.inp.isJoint(p.pos) && p.inp.isJoint(p.pos+1)
}

// AtContextualKw reports whether the current token is an identifier
// spelled text.
func (p *Parser) AtContextualKw(text string) bool {
	return p.At(syntax.Ident) && p.inp.tokenText(p.pos) == text
}

// AtEOF reports whether all significant tokens were consumed.
func (p *Parser) AtEOF() bool {
	return p.pos >= len(p.inp.kinds)
}

// Start opens a new node. The returned marker must be completed or
// abandoned exactly once.
func (p *Parser) Start() Marker {
	pos := len(p.events)
	p.events = append(p.events, tombstone())
	p.open++
	return Marker{pos: pos, bomb: &dropBomb{}}
}

// Bump consumes the current token. It is a no-op at the end of input.
func (p *Parser) Bump() {
	kind := p.Nth(0)
	if kind == syntax.EOF {
		return
	}
	p.doBump(kind, 1)
}

// BumpRemap consumes the current token as a leaf of a different kind. It
// is used for contextual keywords.
func (p *Parser) BumpRemap(kind syntax.Kind) {
	if p.Nth(0) == syntax.EOF {
		return
	}
	p.doBump(kind, 1)
}

// BumpCompound consumes n adjacent tokens as a single leaf of kind.
func (p *Parser) BumpCompound(kind syntax.Kind, n int) {
	p.doBump(kind, n)
}

func (p *Parser) doBump(kind syntax.Kind, n int) {
	p.pos += n
	p.events = append(p.events, Event{Kind: EventToken, NodeKind: kind, NRawTokens: n})
}

// Error records a diagnostic at the current position without consuming
// anything.
func (p *Parser) Error(message string) {
	p.events = append(p.events, Event{Kind: EventError, Message: message})
}

// Eat consumes the current token if it is of the given kind.
func (p *Parser) Eat(kind syntax.Kind) bool {
	if !p.At(kind) {
		return false
	}
	p.Bump()
	return true
}

// Expect consumes a token of the given kind or records an error.
func (p *Parser) Expect(kind syntax.Kind) bool {
	if p.Eat(kind) {
		return true
	}
	p.Error("expected " + kind.Describe())
	return false
}

// ErrAndBump records an error and wraps the current token in an ERROR node.
func (p *Parser) ErrAndBump(message string) {
	m := p.Start()
	p.Error(message)
	p.Bump()
	m.Complete(p, syntax.Error)
}

// ErrRecover is ErrAndBump, except that braces and tokens in the recovery
// set are left for an enclosing rule to consume.
func (p *Parser) ErrRecover(message string, recovery TokenSet) {
	if p.At(syntax.LCurly) || p.At(syntax.RCurly) || p.AtSet(recovery) {
		p.Error(message)
		return
	}
	p.ErrAndBump(message)
}

// mustProgress returns a check that reports whether the parser consumed
// anything since the call. List loops use it to stop on input they cannot
// make sense of.
func (p *Parser) mustProgress() func() bool {
	start := p.pos
	return func() bool {
		if p.pos != start {
			start = p.pos
			return true
		}
		return false
	}
}

// finish hands the event list to the caller. Every marker must be
// settled by now.
func (p *Parser) finish() []Event {
	if p.open != 0 {
		panic("parser: marker must be either completed or abandoned")
	}
	events := p.events
	p.events = nil
	return events
}

type dropBomb struct {
	defused bool
}

func (b *dropBomb) defuse() {
	if b == nil {
		panic("parser: use of a zero marker")
	}
	if b.defused {
		panic("parser: marker settled twice")
	}
	b.defused = true
}

// Marker is an open node. Markers are values; settling one copy settles
// them all.
type Marker struct {
	pos  int
	bomb *dropBomb
}

// Complete closes the node with the given kind.
func (m Marker) Complete(p *Parser, kind syntax.Kind) CompletedMarker {
	m.bomb.defuse()
	p.open--
	p.events[m.pos].NodeKind = kind
	p.events = append(p.events, Event{Kind: EventFinish})
	return CompletedMarker{pos: m.pos, kind: kind}
}

// Abandon discards the node. Its children become children of the
// enclosing node.
func (m Marker) Abandon(p *Parser) {
	m.bomb.defuse()
	p.open--
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
	}
}

// CompletedMarker is a closed node that can still be wrapped.
type CompletedMarker struct {
	pos  int
	kind syntax.Kind
}

func (cm CompletedMarker) Kind() syntax.Kind {
	return cm.kind
}

// Precede opens a new node that will become the parent of cm. This is how
// the left operand of `a + b` ends up inside the BinExpr started after it.
func (cm CompletedMarker) Precede(p *Parser) Marker {
	m := p.Start()
	p.events[cm.pos].ForwardParent = m.pos - cm.pos
	return m
}
