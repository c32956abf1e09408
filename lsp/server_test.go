package lsp

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/greenleaf/config"
)

const testURI = "file:///tmp/main.rs"

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*Server, *glsp.Context, *[]notification) {
	t.Helper()
	var sent []notification
	ctx := &glsp.Context{Notify: func(method string, params any) {
		sent = append(sent, notification{method, params})
	}}
	cfg := config.Default()
	cfg.Reparse.Validate = true
	return NewServer("test", cfg), ctx, &sent
}

func open(t *testing.T, ls *Server, ctx *glsp.Context, text string) {
	t.Helper()
	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "rust", Version: 1, Text: text},
	}))
}

func change(ls *Server, ctx *glsp.Context, version int32, changes ...any) error {
	return ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                version,
		},
		ContentChanges: changes,
	})
}

func rng(l1, c1, l2, c2 uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: l1, Character: c1},
		End:   protocol.Position{Line: l2, Character: c2},
	}
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, last.method)
	params, ok := last.params.(protocol.PublishDiagnosticsParams)
	require.True(t, ok)
	return params
}

func TestInitialize(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	res, err := ls.initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(protocol.InitializeResult)
	require.True(t, ok)
	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindIncremental, *sync.Change)
	assert.True(t, *sync.OpenClose)
	assert.Equal(t, true, result.Capabilities.DocumentSymbolProvider)
	assert.Equal(t, true, result.Capabilities.FoldingRangeProvider)
	assert.Equal(t, true, result.Capabilities.SelectionRangeProvider)
	assert.Equal(t, "greenleaf", result.ServerInfo.Name)
}

func TestOpenPublishesDiagnostics(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	open(t, ls, ctx, "fn f() {\n    a b\n}\n")

	params := lastDiagnostics(t, *sent)
	assert.Equal(t, testURI, params.URI)
	require.Len(t, params.Diagnostics, 1)
	d := params.Diagnostics[0]
	assert.Equal(t, "expected `;`", d.Message)
	assert.Equal(t, rng(1, 5, 1, 5), d.Range)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "greenleaf", *d.Source)
}

func TestIncrementalChange(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	open(t, ls, ctx, "fn f() {\n    a b\n}\n")

	err := change(ls, ctx, 2, protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{
		Start: protocol.Position{Line: 1, Character: 5},
		End:   protocol.Position{Line: 1, Character: 5},
	}, Text: ";"})
	require.NoError(t, err)

	doc, ok := ls.store.Get(testURI)
	require.True(t, ok)
	assert.Equal(t, "fn f() {\n    a; b\n}\n", doc.Tree.Text())
	assert.Equal(t, int32(2), doc.Version)

	params := lastDiagnostics(t, *sent)
	assert.Empty(t, params.Diagnostics)
	require.NotNil(t, params.Version)
	assert.Equal(t, protocol.UInteger(2), *params.Version)

	n, err := testutil.GatherAndCount(ls.metrics.Registry(), "greenleaf_reparses_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestChangesApplyInOrder(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "fn f() {}")

	err := change(ls, ctx, 2,
		protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 3},
			End:   protocol.Position{Line: 0, Character: 4},
		}, Text: "main"},
		protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 11},
			End:   protocol.Position{Line: 0, Character: 11},
		}, Text: " x "},
	)
	require.NoError(t, err)
	doc, _ := ls.store.Get(testURI)
	assert.Equal(t, "fn main() { x }", doc.Tree.Text())
}

func TestChangeCountsUTF16Units(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "fn f() { \"😀x\" }")

	err := change(ls, ctx, 2, protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{
		Start: protocol.Position{Line: 0, Character: 12},
		End:   protocol.Position{Line: 0, Character: 13},
	}, Text: "y"})
	require.NoError(t, err)
	doc, _ := ls.store.Get(testURI)
	assert.Equal(t, "fn f() { \"😀y\" }", doc.Tree.Text())
}

func TestWholeDocumentChange(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "fn f() {}")

	require.NoError(t, change(ls, ctx, 2, protocol.TextDocumentContentChangeEventWhole{Text: "fn g() {}"}))
	doc, _ := ls.store.Get(testURI)
	assert.Equal(t, "fn g() {}", doc.Tree.Text())
}

func TestChangeUnknownDocument(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	assert.Error(t, change(ls, ctx, 2, protocol.TextDocumentContentChangeEventWhole{Text: "x"}))
}

func TestClose(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	open(t, ls, ctx, "fn f() { a b }")
	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	_, ok := ls.store.Get(testURI)
	assert.False(t, ok)
	assert.Empty(t, lastDiagnostics(t, *sent).Diagnostics)
}

func TestDocumentSymbols(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "struct S { a: u8 }\nimpl S {\n    fn new() -> S { S { a: 0 } }\n}\nenum E { A, B }\nmod m { const C: u8 = 1; }\n")

	res, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	symbols, ok := res.([]protocol.DocumentSymbol)
	require.True(t, ok)

	type flat struct {
		name     string
		kind     protocol.SymbolKind
		children []string
	}
	var got []flat
	for _, s := range symbols {
		f := flat{name: s.Name, kind: s.Kind}
		for _, c := range s.Children {
			f.children = append(f.children, c.Name)
		}
		got = append(got, f)
	}
	assert.Equal(t, []flat{
		{"S", protocol.SymbolKindStruct, []string{"a"}},
		{"impl S", protocol.SymbolKindClass, []string{"new"}},
		{"E", protocol.SymbolKindEnum, []string{"A", "B"}},
		{"m", protocol.SymbolKindModule, []string{"C"}},
	}, got)

	assert.Equal(t, rng(0, 7, 0, 8), symbols[0].SelectionRange)
	assert.Equal(t, rng(0, 0, 0, 18), symbols[0].Range)
	assert.Equal(t, rng(1, 0, 1, 6), symbols[1].SelectionRange)
	assert.Equal(t, protocol.SymbolKindField, symbols[0].Children[0].Kind)
	assert.Equal(t, protocol.SymbolKindEnumMember, symbols[2].Children[0].Kind)
}

func TestFoldingRanges(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "// a\n// b\nfn f() {\n    a;\n}\n")

	ranges, err := ls.textDocumentFoldingRange(ctx, &protocol.FoldingRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	require.NoError(t, err)
	require.Len(t, ranges, 2)

	assert.Equal(t, protocol.UInteger(0), ranges[0].StartLine)
	assert.Equal(t, protocol.UInteger(1), ranges[0].EndLine)
	require.NotNil(t, ranges[0].Kind)
	assert.Equal(t, "comment", *ranges[0].Kind)

	assert.Equal(t, protocol.UInteger(2), ranges[1].StartLine)
	assert.Equal(t, protocol.UInteger(3), ranges[1].EndLine)
	assert.Nil(t, ranges[1].Kind)
}

func TestSelectionRange(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	open(t, ls, ctx, "fn f() { a + b }")

	res, err := ls.textDocumentSelectionRange(ctx, &protocol.SelectionRangeParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Positions:    []protocol.Position{{Line: 0, Character: 9}},
	})
	require.NoError(t, err)
	require.Len(t, res, 1)

	var chain []protocol.Range
	for s := &res[0]; s != nil; s = s.Parent {
		chain = append(chain, s.Range)
	}
	assert.Equal(t, rng(0, 9, 0, 10), chain[0])
	assert.Contains(t, chain, rng(0, 9, 0, 14))
	assert.Contains(t, chain, rng(0, 7, 0, 16))
	assert.Equal(t, rng(0, 0, 0, 16), chain[len(chain)-1])
	for i := 1; i < len(chain); i++ {
		assert.NotEqual(t, chain[i-1], chain[i])
	}
}

func TestUnknownDocumentQueries(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	id := protocol.TextDocumentIdentifier{URI: "file:///nope.rs"}

	symbols, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{TextDocument: id})
	assert.NoError(t, err)
	assert.Nil(t, symbols)

	folds, err := ls.textDocumentFoldingRange(ctx, &protocol.FoldingRangeParams{TextDocument: id})
	assert.NoError(t, err)
	assert.Nil(t, folds)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b.rs")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b.rs", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
