// Package lsp serves greenleaf trees over the Language Server Protocol.
// Documents are kept in incremental sync: every ranged change from the
// client is fed to the incremental reparser instead of reparsing the whole
// file.
package lsp

import (
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/greenleaf/config"
	"github.com/dhamidi/greenleaf/metrics"
	"github.com/dhamidi/greenleaf/tree"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "greenleaf"

var log = commonlog.GetLogger("greenleaf.lsp")

type Server struct {
	handler     protocol.Handler
	server      *server.Server
	version     string
	store       *Store
	metrics     *metrics.Metrics
	metricsAddr string
}

func NewServer(version string, cfg *config.Config) *Server {
	cache := tree.NewNodeCache(cfg.Tree.NodeCacheSize)
	m := metrics.New(cache)
	ls := &Server{
		version:     version,
		store:       NewStore(cache, cfg.Reparse.Validate, m),
		metrics:     m,
		metricsAddr: cfg.LSP.MetricsAddr,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   ls.textDocumentFoldingRange,
		TextDocumentSelectionRange: ls.textDocumentSelectionRange,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio serves the protocol on stdin and stdout. When a metrics address
// is configured, /metrics is served there for the lifetime of the server.
func (ls *Server) RunStdio() error {
	if ls.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", ls.metrics.Handler())
		srv := &http.Server{Addr: ls.metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("metrics endpoint: %s", err)
			}
		}()
		defer srv.Close()
	}
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindIncremental)),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.store.Open(params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	log.Infof("opened %s", displayPath(doc.URI))
	publishDiagnostics(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc, err := ls.store.Change(params.TextDocument.URI, params.TextDocument.Version, params.ContentChanges)
	if err != nil {
		return err
	}
	publishDiagnostics(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.store.Close(params.TextDocument.URI)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := ls.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return documentSymbols(doc), nil
}

func (ls *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc, ok := ls.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return foldingRanges(doc), nil
}

func (ls *Server) textDocumentSelectionRange(ctx *glsp.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	doc, ok := ls.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	out := make([]protocol.SelectionRange, 0, len(params.Positions))
	for _, pos := range params.Positions {
		out = append(out, selectionRange(doc, pos))
	}
	return out, nil
}

func publishDiagnostics(ctx *glsp.Context, doc *Document) {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.Tree.Errors()))
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, e := range doc.Tree.Errors() {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    doc.rangeOf(e.Range),
			Severity: &severity,
			Source:   &source,
			Message:  e.Message,
		})
	}
	version := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

func displayPath(uri string) string {
	if path, err := uriToPath(uri); err == nil {
		return path
	}
	return uri
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
