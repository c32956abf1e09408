package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/greenleaf/syntax"
)

// Token is a lexed token. Tokens carry only a kind and a byte length; their
// text is recovered by slicing the source at running offsets.
type Token struct {
	Kind syntax.Kind
	Len  int
}

// Tokenize splits text into tokens, trivia included. The lengths of the
// returned tokens always sum to len(text). Unrecognised input becomes
// syntax.Error tokens rather than being dropped.
func Tokenize(text string) []Token {
	l := New(text)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

type Lexer struct {
	input string
	pos   int
}

func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Offset returns the byte offset of the next token.
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		l.pos++
	}
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// Next returns the next token, or false at the end of input.
func (l *Lexer) Next() (Token, bool) {
	if l.atEOF() {
		return Token{}, false
	}
	start := l.pos
	kind := l.scan()
	return Token{Kind: kind, Len: l.pos - start}, true
}

func (l *Lexer) scan() syntax.Kind {
	ch := l.peek()

	switch {
	case isWhitespace(ch):
		return l.scanWhitespace()
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment()
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment()
	case isDigit(ch):
		return l.scanNumber()
	case ch == '\'':
		return l.scanQuote()
	case ch == '"':
		return l.scanString()
	case isIdentStart(ch):
		return l.scanIdentOrKeyword()
	case ch >= utf8.RuneSelf:
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsLetter(r) {
			return l.scanIdentOrKeyword()
		}
		l.advanceN(size)
		return syntax.Error
	}
	return l.scanPunct()
}

func (l *Lexer) scanWhitespace() syntax.Kind {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return syntax.Whitespace
}

func (l *Lexer) scanLineComment() syntax.Kind {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return syntax.Comment
}

// scanBlockComment consumes a possibly nested block comment. An
// unterminated comment runs to the end of input.
func (l *Lexer) scanBlockComment() syntax.Kind {
	l.advanceN(2)
	depth := 1
	for !l.atEOF() && depth > 0 {
		switch {
		case l.peek() == '*' && l.peekN(1) == '/':
			depth--
			l.advanceN(2)
		case l.peek() == '/' && l.peekN(1) == '*':
			depth++
			l.advanceN(2)
		default:
			l.advance()
		}
	}
	return syntax.Comment
}

func (l *Lexer) scanIdentOrKeyword() syntax.Kind {
	start := l.pos
	l.skipIdentContinue()
	text := l.input[start:l.pos]
	if text == "_" {
		return syntax.Underscore
	}
	if kw, ok := syntax.Keyword(text); ok {
		return kw
	}
	return syntax.Ident
}

func (l *Lexer) skipIdentContinue() {
	for !l.atEOF() {
		ch := l.peek()
		if isIdentStart(ch) || isDigit(ch) {
			l.advance()
			continue
		}
		if ch < utf8.RuneSelf {
			return
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.advanceN(size)
	}
}

// scanNumber lexes integer and float literals including their type
// suffix. A dot only continues the literal when it is not followed by a
// second dot or an identifier, so `1..2` is a range and `x.0.1` keeps the
// trailing `0.1` as a single float token.
func (l *Lexer) scanNumber() syntax.Kind {
	if l.peek() == '0' {
		switch l.peekN(1) {
		case 'x', 'o', 'b':
			l.advanceN(2)
			for isHexDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
			l.skipIdentContinue()
			return syntax.IntNumber
		}
	}

	kind := syntax.IntNumber
	l.skipDigits()

	if l.peek() == '.' && l.peekN(1) != '.' && !isIdentStart(l.peekN(1)) && l.peekN(1) < utf8.RuneSelf {
		kind = syntax.FloatNumber
		l.advance()
		l.skipDigits()
	}

	if ch := l.peek(); ch == 'e' || ch == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			kind = syntax.FloatNumber
			l.advanceN(2)
			l.skipDigits()
		}
	}

	if isIdentStart(l.peek()) {
		start := l.pos
		l.skipIdentContinue()
		if suffix := l.input[start:l.pos]; suffix == "f32" || suffix == "f64" {
			kind = syntax.FloatNumber
		}
	}
	return kind
}

func (l *Lexer) skipDigits() {
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

// scanQuote distinguishes character literals from lifetimes. `'a'` and
// `'\n'` are characters, `'a` is a lifetime.
func (l *Lexer) scanQuote() syntax.Kind {
	next := l.peekN(1)
	if next == '\\' {
		return l.scanChar()
	}
	if next >= utf8.RuneSelf {
		_, size := utf8.DecodeRuneInString(l.input[l.pos+1:])
		if l.peekN(1+size) == '\'' {
			return l.scanChar()
		}
	} else if l.peekN(2) == '\'' {
		return l.scanChar()
	}
	if isIdentStart(next) {
		l.advance()
		l.skipIdentContinue()
		return syntax.Lifetime
	}
	return l.scanChar()
}

func (l *Lexer) scanChar() syntax.Kind {
	l.advance()
	for !l.atEOF() {
		switch l.peek() {
		case '\\':
			l.advanceN(2)
		case '\'':
			l.advance()
			return syntax.CharLit
		case '\n':
			return syntax.CharLit
		default:
			l.advance()
		}
	}
	return syntax.CharLit
}

// scanString consumes a string literal. An unterminated string runs to the
// end of input.
func (l *Lexer) scanString() syntax.Kind {
	l.advance()
	for !l.atEOF() {
		switch l.peek() {
		case '\\':
			l.advanceN(2)
		case '"':
			l.advance()
			return syntax.StringLit
		default:
			l.advance()
		}
	}
	return syntax.StringLit
}

func (l *Lexer) scanPunct() syntax.Kind {
	ch := l.peek()
	next := l.peekN(1)

	switch ch {
	case '.':
		if next == '.' {
			if l.peekN(2) == '.' {
				l.advanceN(3)
				return syntax.DotDotDot
			}
			l.advanceN(2)
			return syntax.DotDot
		}
	case ':':
		if next == ':' {
			l.advanceN(2)
			return syntax.ColonColon
		}
	case '-':
		if next == '>' {
			l.advanceN(2)
			return syntax.ThinArrow
		}
	case '=':
		switch next {
		case '>':
			l.advanceN(2)
			return syntax.FatArrow
		case '=':
			l.advanceN(2)
			return syntax.EqEq
		}
	case '!':
		if next == '=' {
			l.advanceN(2)
			return syntax.Neq
		}
	}

	l.advance()
	if kind, ok := singleChar[ch]; ok {
		return kind
	}
	return syntax.Error
}

var singleChar = map[byte]syntax.Kind{
	';': syntax.Semi,
	',': syntax.Comma,
	'(': syntax.LParen,
	')': syntax.RParen,
	'{': syntax.LCurly,
	'}': syntax.RCurly,
	'[': syntax.LBrack,
	']': syntax.RBrack,
	'<': syntax.LAngle,
	'>': syntax.RAngle,
	'@': syntax.At,
	'#': syntax.Pound,
	'~': syntax.Tilde,
	'?': syntax.Question,
	'$': syntax.Dollar,
	'&': syntax.Amp,
	'|': syntax.Pipe,
	'+': syntax.Plus,
	'*': syntax.Star,
	'/': syntax.Slash,
	'^': syntax.Caret,
	'%': syntax.Percent,
	'.': syntax.Dot,
	':': syntax.Colon,
	'=': syntax.Eq,
	'!': syntax.Excl,
	'-': syntax.Minus,
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
