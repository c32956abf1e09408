package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/syntax"
)

type testNode struct {
	kind     syntax.Kind
	leaf     bool
	text     string
	children []*testNode
}

func (n *testNode) isLeaf() bool {
	return n.leaf
}

func (n *testNode) fullText() string {
	if n.isLeaf() {
		return n.text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.fullText())
	}
	return sb.String()
}

// significant returns the children that are not trivia.
func (n *testNode) significant() []*testNode {
	var out []*testNode
	for _, c := range n.children {
		if !c.kind.IsTrivia() {
			out = append(out, c)
		}
	}
	return out
}

func (n *testNode) findAll(kind syntax.Kind) []*testNode {
	var out []*testNode
	var walk func(*testNode)
	walk = func(n *testNode) {
		if n.kind == kind {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(n)
	return out
}

type testSink struct {
	stack  []*testNode
	root   *testNode
	errors []string
}

func (s *testSink) Leaf(kind syntax.Kind, text string) {
	top := s.stack[len(s.stack)-1]
	top.children = append(top.children, &testNode{kind: kind, leaf: true, text: text})
}

func (s *testSink) StartBranch(kind syntax.Kind) {
	n := &testNode{kind: kind}
	if len(s.stack) == 0 {
		s.root = n
	} else {
		top := s.stack[len(s.stack)-1]
		top.children = append(top.children, n)
	}
	s.stack = append(s.stack, n)
}

func (s *testSink) FinishBranch() {
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *testSink) Error(message string) {
	s.errors = append(s.errors, message)
}

func parseWith(t *testing.T, text string, entry Entry) (*testNode, []string) {
	t.Helper()
	tokens := lexer.Tokenize(text)
	events, complete := Parse(text, tokens, entry)
	if !complete {
		t.Fatalf("parse of %q left tokens unconsumed", text)
	}
	sink := &testSink{}
	Process(sink, text, tokens, events)
	if len(sink.stack) != 0 {
		t.Fatalf("unbalanced branches after processing %q", text)
	}
	return sink.root, sink.errors
}

func parseFile(t *testing.T, text string) (*testNode, []string) {
	return parseWith(t, text, SourceFile)
}

func parseExpr(t *testing.T, text string) (*testNode, []string) {
	return parseWith(t, text, Expression)
}

// render prints an expression tree with explicit parentheses.
func render(n *testNode) string {
	kids := n.significant()
	switch n.kind {
	case syntax.BinExpr, syntax.RangeExpr:
		if len(kids) == 3 {
			return "(" + render(kids[0]) + " " + kids[1].text + " " + render(kids[2]) + ")"
		}
		if len(kids) == 2 && kids[0].isLeaf() {
			return "(" + kids[0].text + render(kids[1]) + ")"
		}
		if len(kids) == 2 {
			return "(" + render(kids[0]) + kids[1].text + ")"
		}
	case syntax.PrefixExpr, syntax.RefExpr:
		var ops []string
		for _, k := range kids[:len(kids)-1] {
			ops = append(ops, k.text)
		}
		prefix := strings.Join(ops, "")
		if len(ops) > 1 {
			prefix += " "
		}
		return "(" + prefix + render(kids[len(kids)-1]) + ")"
	case syntax.ParenExpr:
		return render(kids[1])
	case syntax.PathExpr, syntax.Literal:
		return strings.TrimSpace(n.fullText())
	case syntax.SourceFile:
		return render(kids[0])
	}
	return n.kind.String()
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a || b && c", "(a || (b && c))"},
		{"a && b || c", "((a && b) || c)"},
		{"a == b | c", "(a == (b | c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a << 1 + 2", "(a << (1 + 2))"},
		{"a < b + c", "(a < (b + c))"},
		{"x <= y", "(x <= y)"},
		{"x >= y", "(x >= y)"},
		{"a >>= 2", "(a >>= 2)"},
		{"a <<= 2", "(a <<= 2)"},
		{"a += 1 + 2", "(a += (1 + 2))"},
		{"a = b || c", "(a = (b || c))"},
		{"-a * b", "((-a) * b)"},
		{"!a && b", "((!a) && b)"},
		{"&a & b", "((&a) & b)"},
		{"&mut a", "(&mut a)"},
		{"*a % b", "((*a) % b)"},
		{"a..b", "(a .. b)"},
		{"a..=b + 1", "(a ..= (b + 1))"},
		{"a..", "(a..)"},
		{"..b", "(..b)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, errs := parseExpr(t, tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if got := render(root); got != tt.want {
				t.Errorf("render(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompoundOperatorsAreSingleLeaves(t *testing.T) {
	tests := []struct {
		input string
		kind  syntax.Kind
		text  string
	}{
		{"a && b", syntax.AmpAmp, "&&"},
		{"a || b", syntax.PipePipe, "||"},
		{"a <= b", syntax.LtEq, "<="},
		{"a >> b", syntax.Shr, ">>"},
		{"a >>= b", syntax.ShrEq, ">>="},
		{"a -= b", syntax.MinusEq, "-="},
		{"a..=b", syntax.DotDotEq, "..="},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, _ := parseExpr(t, tt.input)
			leaves := root.findAll(tt.kind)
			if len(leaves) != 1 {
				t.Fatalf("found %d %v leaves, want 1", len(leaves), tt.kind)
			}
			if leaves[0].text != tt.text {
				t.Errorf("leaf text = %q, want %q", leaves[0].text, tt.text)
			}
		})
	}
}

func TestSeparatedOperatorsAreNotFused(t *testing.T) {
	root, _ := parseExpr(t, "a & &b")
	if n := len(root.findAll(syntax.AmpAmp)); n != 0 {
		t.Fatalf("`& &` was fused into %d AmpAmp leaves", n)
	}
	if got := render(root); got != "(a & (&b))" {
		t.Errorf("render = %s", got)
	}

	root, _ = parseExpr(t, "a > > b")
	if n := len(root.findAll(syntax.Shr)); n != 0 {
		t.Errorf("`> >` was fused into a shift")
	}
}

func TestGenericArgumentsCloseSeparately(t *testing.T) {
	root, errs := parseFile(t, "fn f(x: Vec<Vec<u8>>) {}")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if n := len(root.findAll(syntax.TypeArgList)); n != 2 {
		t.Errorf("found %d TypeArgList nodes, want 2", n)
	}
}

func TestStructLiteralRestrictions(t *testing.T) {
	root, errs := parseFile(t, "fn f() { if x {1} }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if n := len(root.findAll(syntax.StructLit)); n != 0 {
		t.Errorf("condition parsed as struct literal")
	}
	conds := root.findAll(syntax.Condition)
	if len(conds) != 1 || conds[0].significant()[0].kind != syntax.PathExpr {
		t.Errorf("condition is not a plain path")
	}

	root, errs = parseFile(t, "fn f() { let v = S {a: 1}; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if n := len(root.findAll(syntax.StructLit)); n != 1 {
		t.Errorf("found %d struct literals, want 1", n)
	}

	root, _ = parseFile(t, "fn f() { while (S {a: 1}).ok {} }")
	if n := len(root.findAll(syntax.StructLit)); n != 1 {
		t.Errorf("parenthesised struct literal in condition not parsed")
	}
}

func TestBlockLikeStatements(t *testing.T) {
	root, errs := parseFile(t, "fn f() { {1} - 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	blocks := root.findAll(syntax.Block)
	stmts := blocks[0].findAll(syntax.ExprStmt)
	if len(stmts) != 2 {
		t.Fatalf("found %d statements, want 2", len(stmts))
	}
	if stmts[0].significant()[0].kind != syntax.BlockExpr {
		t.Errorf("first statement is %v", stmts[0].significant()[0].kind)
	}
	if stmts[1].significant()[0].kind != syntax.PrefixExpr {
		t.Errorf("second statement is %v", stmts[1].significant()[0].kind)
	}

	root, errs = parseExpr(t, "{1} - 1")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if kind := root.significant()[0].kind; kind != syntax.BinExpr {
		t.Errorf("expression context produced %v, want BinExpr", kind)
	}
}

func TestStatementsNeedSemicolons(t *testing.T) {
	_, errs := parseFile(t, "fn f() { a b }")
	if len(errs) != 1 || errs[0] != "expected `;`" {
		t.Errorf("errors = %v", errs)
	}

	_, errs = parseFile(t, "fn f() { if a {} b }")
	if len(errs) != 0 {
		t.Errorf("block-like statement required a semicolon: %v", errs)
	}
}

func TestMalformedParamList(t *testing.T) {
	root, errs := parseFile(t, "fn f(a: i32, , b: i32) {}")
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}
	if n := len(root.findAll(syntax.Error)); n != 1 {
		t.Errorf("found %d ERROR nodes, want 1", n)
	}
	if n := len(root.findAll(syntax.FnDef)); n != 1 {
		t.Errorf("function node missing")
	}
	if n := len(root.findAll(syntax.Param)); n != 2 {
		t.Errorf("found %d params, want 2", n)
	}
}

func TestTupleIndexFloatIsReported(t *testing.T) {
	root, errs := parseExpr(t, "x.0.1")
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
	fields := root.findAll(syntax.FieldExpr)
	if len(fields) != 1 {
		t.Fatalf("found %d field expressions, want 1", len(fields))
	}
	errNodes := fields[0].findAll(syntax.Error)
	if len(errNodes) != 1 || errNodes[0].fullText() != "0.1" {
		t.Errorf("float tuple index not wrapped in ERROR")
	}

	root, errs = parseExpr(t, "x.0")
	if len(errs) != 0 || len(root.findAll(syntax.FieldExpr)) != 1 {
		t.Errorf("integer tuple index rejected: %v", errs)
	}
}

func TestPostfixExpressions(t *testing.T) {
	tests := []struct {
		input string
		kind  syntax.Kind
	}{
		{"f(1, 2)", syntax.CallExpr},
		{"a[0]", syntax.IndexExpr},
		{"a.b()", syntax.MethodCallExpr},
		{"a.collect::<Vec<_>>()", syntax.MethodCallExpr},
		{"a.b", syntax.FieldExpr},
		{"a?", syntax.TryExpr},
		{"a as u8", syntax.CastExpr},
		{"foo!(1, 2)", syntax.MacroCall},
		{"|x| x + 1", syntax.LambdaExpr},
		{"move || 1", syntax.LambdaExpr},
		{"[1, 2, 3]", syntax.ArrayExpr},
		{"[0; 4]", syntax.ArrayExpr},
		{"(1, 2)", syntax.TupleExpr},
		{"match x { A => 1, B(y) if y > 0 => { 2 } _ => 3 }", syntax.MatchExpr},
		{"loop { break }", syntax.LoopExpr},
		{"for i in 0..n { continue }", syntax.ForExpr},
		{"while let Some(x) = it.next() {}", syntax.WhileExpr},
		{"if a {} else if b {} else {}", syntax.IfExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, errs := parseExpr(t, tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if kind := root.significant()[0].kind; kind != tt.kind {
				t.Errorf("top node = %v, want %v", kind, tt.kind)
			}
		})
	}
}

func TestItems(t *testing.T) {
	tests := []struct {
		input string
		kind  syntax.Kind
	}{
		{"fn f<T: Copy>(x: T) -> T where T: Clone { x }", syntax.FnDef},
		{"pub(crate) struct S { a: i32, pub b: Vec<u8> }", syntax.StructDef},
		{"struct T(i32, String);", syntax.StructDef},
		{"struct U;", syntax.StructDef},
		{"union U { a: u32, b: f32 }", syntax.UnionDef},
		{"enum E { A, B(i32), C { x: u8 }, D = 4 }", syntax.EnumDef},
		{"trait Tr: Sized { fn m(&self); }", syntax.TraitDef},
		{"impl<T> Tr for S<T> { fn m(&mut self) {} }", syntax.ImplBlock},
		{"use a::b::{c, d::*, e as f};", syntax.UseItem},
		{"mod m { const X: u8 = 1; }", syntax.Module},
		{"static mut Y: &'static str = \"y\";", syntax.StaticDef},
		{"type A<T> = Vec<T>;", syntax.TypeAliasDef},
		{"#[derive(Debug)] struct S;", syntax.StructDef},
		{"macro_rules! m { () => {} }", syntax.MacroCall},
		{"const fn f() {}", syntax.FnDef},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, errs := parseFile(t, tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if kind := root.significant()[0].kind; kind != tt.kind {
				t.Errorf("item = %v, want %v", kind, tt.kind)
			}
		})
	}
}

func TestContextualUnion(t *testing.T) {
	root, _ := parseFile(t, "union U { a: i32 }")
	if n := len(root.findAll(syntax.UnionKw)); n != 1 {
		t.Errorf("union keyword not remapped")
	}

	root, errs := parseFile(t, "fn f() { let union = 1; union + 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if n := len(root.findAll(syntax.UnionDef)) + len(root.findAll(syntax.UnionKw)); n != 0 {
		t.Errorf("identifier `union` was treated as a keyword")
	}
}

func TestCommentAttachment(t *testing.T) {
	root, _ := parseFile(t, "// doc\nfn f() {}")
	fn := root.findAll(syntax.FnDef)[0]
	if fn.children[0].kind != syntax.Comment {
		t.Errorf("leading comment not attached, first child is %v", fn.children[0].kind)
	}

	root, _ = parseFile(t, "// detached\n\nfn f() {}")
	if root.children[0].kind != syntax.Comment {
		t.Errorf("comment separated by a blank line was attached")
	}
	fn = root.findAll(syntax.FnDef)[0]
	if fn.children[0].kind != syntax.FnKw {
		t.Errorf("function starts with %v", fn.children[0].kind)
	}
}

func TestTriviaPlacement(t *testing.T) {
	root, _ := parseFile(t, "  fn f() {}  \n")
	if root.children[0].kind != syntax.Whitespace {
		t.Errorf("leading whitespace not a root child")
	}
	last := root.children[len(root.children)-1]
	if last.kind != syntax.Whitespace {
		t.Errorf("trailing whitespace not a root child")
	}
	fn := root.findAll(syntax.FnDef)[0]
	if fn.children[len(fn.children)-1].kind.IsTrivia() {
		t.Errorf("function ends with trivia")
	}
}

func TestLossless(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"fn main() { let x = 1 + 2 * 3; }\n",
		"}}}{{{",
		"fn f(,,,) -> { struct }",
		"impl for where <<< >>> ;;",
		"fn f() { x.0.1.2 ..= .. ... }",
		"use ::{*, a as, };",
		"fn f() { match { } => , }",
		"struct S { pub }",
		"enum E { #[a] }",
		"`~$ @ 'a 'b' \"str",
		"fn f() { let = ; }",
		"fn f<>(x: &'a mut dyn A + B) where T: {}",
		"/* unterminated",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			root, _ := parseFile(t, input)
			if got := root.fullText(); got != input {
				t.Errorf("tree text = %q, want %q", got, input)
			}
		})
	}
}

func TestErrorNodesAreBranches(t *testing.T) {
	root, errs := parseFile(t, "}}}")
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}
	nodes := root.findAll(syntax.Error)
	if len(nodes) != 3 {
		t.Fatalf("got %d ERROR nodes, want 3", len(nodes))
	}
	for _, n := range nodes {
		if n.isLeaf() || n.fullText() != "}" {
			t.Errorf("ERROR node leaf=%v text=%q, want a branch spelling \"}\"", n.isLeaf(), n.fullText())
		}
	}
}

func TestForwardParentEvents(t *testing.T) {
	text := "1 + 2"
	events, _ := Parse(text, lexer.Tokenize(text), Expression)
	found := false
	for _, ev := range events {
		if ev.Kind == EventStart && ev.ForwardParent != 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("no forward parent recorded in %v", events)
	}
}

func TestMarkerMisuse(t *testing.T) {
	t.Run("double completion", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		Parse("x", lexer.Tokenize("x"), func(p *Parser) {
			m := p.Start()
			p.Bump()
			m.Complete(p, syntax.SourceFile)
			m.Complete(p, syntax.SourceFile)
		})
	})

	t.Run("unsettled marker", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		Parse("x", lexer.Tokenize("x"), func(p *Parser) {
			p.Start()
			p.Bump()
		})
	})

	t.Run("stuck parser", func(t *testing.T) {
		defer func() {
			r := recover()
			if r == nil || !strings.Contains(r.(string), "stuck") {
				t.Errorf("recover() = %v", r)
			}
		}()
		Parse("x", lexer.Tokenize("x"), func(p *Parser) {
			for !p.At(syntax.EOF) {
			}
		})
	})
}

func TestReparserLookup(t *testing.T) {
	if _, ok := Reparser(syntax.Block, syntax.LCurly); !ok {
		t.Error("Block should be reparsable")
	}
	if _, ok := Reparser(syntax.TokenTree, syntax.LParen); ok {
		t.Error("parenthesised token trees should not be reparsable")
	}
	if _, ok := Reparser(syntax.FnDef, syntax.FnKw); ok {
		t.Error("FnDef should not be reparsable")
	}
}

func TestTokenSet(t *testing.T) {
	s := NewTokenSet(syntax.Ident, syntax.ShrEq)
	if !s.Contains(syntax.Ident) || !s.Contains(syntax.ShrEq) || s.Contains(syntax.Comma) {
		t.Error("membership is wrong")
	}
	if s.Contains(syntax.BinExpr) {
		t.Error("node kinds are never members")
	}
	u := s.Union(NewTokenSet(syntax.Comma))
	if !u.Contains(syntax.Comma) || !u.Contains(syntax.Ident) {
		t.Error("union is wrong")
	}
}
