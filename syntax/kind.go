package syntax

// Kind tags every token and node in a syntax tree. Token kinds come first so
// that token sets can be represented as small bit sets.
type Kind uint16

const (
	Tombstone Kind = iota
	EOF
	Error

	// Trivia
	Whitespace
	Comment

	// Literals and names
	Ident
	IntNumber
	FloatNumber
	CharLit
	StringLit
	Lifetime

	// Keywords
	FnKw
	LetKw
	MutKw
	IfKw
	ElseKw
	WhileKw
	LoopKw
	ForKw
	InKw
	ReturnKw
	BreakKw
	ContinueKw
	StructKw
	EnumKw
	ImplKw
	TraitKw
	UseKw
	ModKw
	PubKw
	ConstKw
	StaticKw
	TypeKw
	MatchKw
	AsKw
	TrueKw
	FalseKw
	SelfKw
	SuperKw
	CrateKw
	RefKw
	MoveKw
	WhereKw
	DynKw

	// Contextual keywords, produced by the parser from identifiers
	UnionKw

	// Punctuation
	Semi
	Comma
	LParen
	RParen
	LCurly
	RCurly
	LBrack
	RBrack
	LAngle
	RAngle
	At
	Pound
	Tilde
	Question
	Dollar
	Amp
	Pipe
	Plus
	Star
	Slash
	Caret
	Percent
	Dot
	Colon
	Eq
	Excl
	Minus
	Underscore

	// Composite punctuation produced by the lexer
	DotDot
	DotDotDot
	ColonColon
	ThinArrow
	FatArrow
	EqEq
	Neq

	// Composite punctuation fused by the parser from adjacent tokens
	DotDotEq
	LtEq
	GtEq
	Shl
	Shr
	AmpAmp
	PipePipe
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq

	lastToken

	// Items
	SourceFile
	FnDef
	StructDef
	EnumDef
	UnionDef
	TraitDef
	ImplBlock
	UseItem
	UseTree
	UseTreeList
	Alias
	Module
	ItemList
	ConstDef
	StaticDef
	TypeAliasDef
	MacroCall
	TokenTree
	Attr
	Visibility
	Name
	NameRef

	// Signatures and generics
	ParamList
	Param
	SelfParam
	RetType
	TypeParamList
	TypeParam
	LifetimeParam
	TypeBoundList
	TypeBound
	WhereClause
	WherePred
	TypeArgList
	TypeArg
	LifetimeArg
	AssocTypeArg
	Path
	PathSegment

	// Types
	PathType
	TupleType
	ParenType
	ReferenceType
	PointerType
	ArrayType
	SliceType
	NeverType
	PlaceholderType
	FnPointerType
	ImplTraitType
	DynTraitType

	// Fields and variants
	NamedFieldDefList
	NamedFieldDef
	PosFieldDefList
	PosFieldDef
	EnumVariantList
	EnumVariant

	// Statements
	Block
	LetStmt
	ExprStmt

	// Expressions
	BlockExpr
	TupleExpr
	ArrayExpr
	ParenExpr
	PathExpr
	LambdaExpr
	IfExpr
	Condition
	WhileExpr
	LoopExpr
	ForExpr
	ContinueExpr
	BreakExpr
	ReturnExpr
	MatchExpr
	MatchArmList
	MatchArm
	MatchGuard
	StructLit
	NamedFieldList
	NamedField
	CallExpr
	IndexExpr
	MethodCallExpr
	FieldExpr
	TryExpr
	CastExpr
	RefExpr
	PrefixExpr
	RangeExpr
	BinExpr
	Literal
	ArgList

	// Patterns
	PlaceholderPat
	BindPat
	RefPat
	TuplePat
	TupleStructPat
	StructPat
	FieldPatList
	FieldPat
	PathPat
	LiteralPat
	SlicePat
	RangePat
)

var kindNames = map[Kind]string{
	Tombstone:         "Tombstone",
	EOF:               "EOF",
	Error:             "Error",
	Whitespace:        "Whitespace",
	Comment:           "Comment",
	Ident:             "Ident",
	IntNumber:         "IntNumber",
	FloatNumber:       "FloatNumber",
	CharLit:           "CharLit",
	StringLit:         "StringLit",
	Lifetime:          "Lifetime",
	FnKw:              "FnKw",
	LetKw:             "LetKw",
	MutKw:             "MutKw",
	IfKw:              "IfKw",
	ElseKw:            "ElseKw",
	WhileKw:           "WhileKw",
	LoopKw:            "LoopKw",
	ForKw:             "ForKw",
	InKw:              "InKw",
	ReturnKw:          "ReturnKw",
	BreakKw:           "BreakKw",
	ContinueKw:        "ContinueKw",
	StructKw:          "StructKw",
	EnumKw:            "EnumKw",
	ImplKw:            "ImplKw",
	TraitKw:           "TraitKw",
	UseKw:             "UseKw",
	ModKw:             "ModKw",
	PubKw:             "PubKw",
	ConstKw:           "ConstKw",
	StaticKw:          "StaticKw",
	TypeKw:            "TypeKw",
	MatchKw:           "MatchKw",
	AsKw:              "AsKw",
	TrueKw:            "TrueKw",
	FalseKw:           "FalseKw",
	SelfKw:            "SelfKw",
	SuperKw:           "SuperKw",
	CrateKw:           "CrateKw",
	RefKw:             "RefKw",
	MoveKw:            "MoveKw",
	WhereKw:           "WhereKw",
	DynKw:             "DynKw",
	UnionKw:           "UnionKw",
	Semi:              "Semi",
	Comma:             "Comma",
	LParen:            "LParen",
	RParen:            "RParen",
	LCurly:            "LCurly",
	RCurly:            "RCurly",
	LBrack:            "LBrack",
	RBrack:            "RBrack",
	LAngle:            "LAngle",
	RAngle:            "RAngle",
	At:                "At",
	Pound:             "Pound",
	Tilde:             "Tilde",
	Question:          "Question",
	Dollar:            "Dollar",
	Amp:               "Amp",
	Pipe:              "Pipe",
	Plus:              "Plus",
	Star:              "Star",
	Slash:             "Slash",
	Caret:             "Caret",
	Percent:           "Percent",
	Dot:               "Dot",
	Colon:             "Colon",
	Eq:                "Eq",
	Excl:              "Excl",
	Minus:             "Minus",
	Underscore:        "Underscore",
	DotDot:            "DotDot",
	DotDotDot:         "DotDotDot",
	ColonColon:        "ColonColon",
	ThinArrow:         "ThinArrow",
	FatArrow:          "FatArrow",
	EqEq:              "EqEq",
	Neq:               "Neq",
	DotDotEq:          "DotDotEq",
	LtEq:              "LtEq",
	GtEq:              "GtEq",
	Shl:               "Shl",
	Shr:               "Shr",
	AmpAmp:            "AmpAmp",
	PipePipe:          "PipePipe",
	PlusEq:            "PlusEq",
	MinusEq:           "MinusEq",
	StarEq:            "StarEq",
	SlashEq:           "SlashEq",
	PercentEq:         "PercentEq",
	AmpEq:             "AmpEq",
	PipeEq:            "PipeEq",
	CaretEq:           "CaretEq",
	ShlEq:             "ShlEq",
	ShrEq:             "ShrEq",
	SourceFile:        "SourceFile",
	FnDef:             "FnDef",
	StructDef:         "StructDef",
	EnumDef:           "EnumDef",
	UnionDef:          "UnionDef",
	TraitDef:          "TraitDef",
	ImplBlock:         "ImplBlock",
	UseItem:           "UseItem",
	UseTree:           "UseTree",
	UseTreeList:       "UseTreeList",
	Alias:             "Alias",
	Module:            "Module",
	ItemList:          "ItemList",
	ConstDef:          "ConstDef",
	StaticDef:         "StaticDef",
	TypeAliasDef:      "TypeAliasDef",
	MacroCall:         "MacroCall",
	TokenTree:         "TokenTree",
	Attr:              "Attr",
	Visibility:        "Visibility",
	Name:              "Name",
	NameRef:           "NameRef",
	ParamList:         "ParamList",
	Param:             "Param",
	SelfParam:         "SelfParam",
	RetType:           "RetType",
	TypeParamList:     "TypeParamList",
	TypeParam:         "TypeParam",
	LifetimeParam:     "LifetimeParam",
	TypeBoundList:     "TypeBoundList",
	TypeBound:         "TypeBound",
	WhereClause:       "WhereClause",
	WherePred:         "WherePred",
	TypeArgList:       "TypeArgList",
	TypeArg:           "TypeArg",
	LifetimeArg:       "LifetimeArg",
	AssocTypeArg:      "AssocTypeArg",
	Path:              "Path",
	PathSegment:       "PathSegment",
	PathType:          "PathType",
	TupleType:         "TupleType",
	ParenType:         "ParenType",
	ReferenceType:     "ReferenceType",
	PointerType:       "PointerType",
	ArrayType:         "ArrayType",
	SliceType:         "SliceType",
	NeverType:         "NeverType",
	PlaceholderType:   "PlaceholderType",
	FnPointerType:     "FnPointerType",
	ImplTraitType:     "ImplTraitType",
	DynTraitType:      "DynTraitType",
	NamedFieldDefList: "NamedFieldDefList",
	NamedFieldDef:     "NamedFieldDef",
	PosFieldDefList:   "PosFieldDefList",
	PosFieldDef:       "PosFieldDef",
	EnumVariantList:   "EnumVariantList",
	EnumVariant:       "EnumVariant",
	Block:             "Block",
	LetStmt:           "LetStmt",
	ExprStmt:          "ExprStmt",
	BlockExpr:         "BlockExpr",
	TupleExpr:         "TupleExpr",
	ArrayExpr:         "ArrayExpr",
	ParenExpr:         "ParenExpr",
	PathExpr:          "PathExpr",
	LambdaExpr:        "LambdaExpr",
	IfExpr:            "IfExpr",
	Condition:         "Condition",
	WhileExpr:         "WhileExpr",
	LoopExpr:          "LoopExpr",
	ForExpr:           "ForExpr",
	ContinueExpr:      "ContinueExpr",
	BreakExpr:         "BreakExpr",
	ReturnExpr:        "ReturnExpr",
	MatchExpr:         "MatchExpr",
	MatchArmList:      "MatchArmList",
	MatchArm:          "MatchArm",
	MatchGuard:        "MatchGuard",
	StructLit:         "StructLit",
	NamedFieldList:    "NamedFieldList",
	NamedField:        "NamedField",
	CallExpr:          "CallExpr",
	IndexExpr:         "IndexExpr",
	MethodCallExpr:    "MethodCallExpr",
	FieldExpr:         "FieldExpr",
	TryExpr:           "TryExpr",
	CastExpr:          "CastExpr",
	RefExpr:           "RefExpr",
	PrefixExpr:        "PrefixExpr",
	RangeExpr:         "RangeExpr",
	BinExpr:           "BinExpr",
	Literal:           "Literal",
	ArgList:           "ArgList",
	PlaceholderPat:    "PlaceholderPat",
	BindPat:           "BindPat",
	RefPat:            "RefPat",
	TuplePat:          "TuplePat",
	TupleStructPat:    "TupleStructPat",
	StructPat:         "StructPat",
	FieldPatList:      "FieldPatList",
	FieldPat:          "FieldPat",
	PathPat:           "PathPat",
	LiteralPat:        "LiteralPat",
	SlicePat:          "SlicePat",
	RangePat:          "RangePat",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsToken reports whether k can label a leaf.
func (k Kind) IsToken() bool {
	return k < lastToken
}

// IsTrivia reports whether k is whitespace or a comment.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsKeyword reports whether k is a reserved or contextual keyword.
func (k Kind) IsKeyword() bool {
	return k >= FnKw && k <= UnionKw
}

// Describe renders k for diagnostics: fixed-text kinds are quoted,
// everything else uses the kind name.
func (k Kind) Describe() string {
	if text, ok := fixedText[k]; ok {
		return "`" + text + "`"
	}
	return k.String()
}
