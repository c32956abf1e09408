package syntax

var fixedText = map[Kind]string{
	FnKw:       "fn",
	LetKw:      "let",
	MutKw:      "mut",
	IfKw:       "if",
	ElseKw:     "else",
	WhileKw:    "while",
	LoopKw:     "loop",
	ForKw:      "for",
	InKw:       "in",
	ReturnKw:   "return",
	BreakKw:    "break",
	ContinueKw: "continue",
	StructKw:   "struct",
	EnumKw:     "enum",
	ImplKw:     "impl",
	TraitKw:    "trait",
	UseKw:      "use",
	ModKw:      "mod",
	PubKw:      "pub",
	ConstKw:    "const",
	StaticKw:   "static",
	TypeKw:     "type",
	MatchKw:    "match",
	AsKw:       "as",
	TrueKw:     "true",
	FalseKw:    "false",
	SelfKw:     "self",
	SuperKw:    "super",
	CrateKw:    "crate",
	RefKw:      "ref",
	MoveKw:     "move",
	WhereKw:    "where",
	DynKw:      "dyn",
	UnionKw:    "union",
	Semi:       ";",
	Comma:      ",",
	LParen:     "(",
	RParen:     ")",
	LCurly:     "{",
	RCurly:     "}",
	LBrack:     "[",
	RBrack:     "]",
	LAngle:     "<",
	RAngle:     ">",
	At:         "@",
	Pound:      "#",
	Tilde:      "~",
	Question:   "?",
	Dollar:     "$",
	Amp:        "&",
	Pipe:       "|",
	Plus:       "+",
	Star:       "*",
	Slash:      "/",
	Caret:      "^",
	Percent:    "%",
	Dot:        ".",
	Colon:      ":",
	Eq:         "=",
	Excl:       "!",
	Minus:      "-",
	Underscore: "_",
	DotDot:     "..",
	DotDotDot:  "...",
	ColonColon: "::",
	ThinArrow:  "->",
	FatArrow:   "=>",
	EqEq:       "==",
	Neq:        "!=",
	DotDotEq:   "..=",
	LtEq:       "<=",
	GtEq:       ">=",
	Shl:        "<<",
	Shr:        ">>",
	AmpAmp:     "&&",
	PipePipe:   "||",
	PlusEq:     "+=",
	MinusEq:    "-=",
	StarEq:     "*=",
	SlashEq:    "/=",
	PercentEq:  "%=",
	AmpEq:      "&=",
	PipeEq:     "|=",
	CaretEq:    "^=",
	ShlEq:      "<<=",
	ShrEq:      ">>=",
}

var keywords = map[string]Kind{}

func init() {
	for k, text := range fixedText {
		if k.IsKeyword() && k != UnionKw {
			keywords[text] = k
		}
	}
}

// FixedText returns the text every token of kind k spells, if it has one.
func FixedText(k Kind) (string, bool) {
	text, ok := fixedText[k]
	return text, ok
}

// Keyword looks up the reserved keyword spelled by text. Contextual
// keywords are not reserved and are never returned.
func Keyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// IsContextualKeyword reports whether text is an identifier the parser
// may reinterpret as a keyword depending on context.
func IsContextualKeyword(text string) bool {
	return text == "union"
}
