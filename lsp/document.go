package lsp

import (
	"fmt"
	"sync"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/greenleaf/metrics"
	"github.com/dhamidi/greenleaf/reparse"
	"github.com/dhamidi/greenleaf/syntax"
	"github.com/dhamidi/greenleaf/tree"
)

// Document is an open text document and its current tree.
type Document struct {
	URI     string
	Version int32
	Tree    *tree.Tree
	Lines   *syntax.LineIndex
}

func newDocument(uri string, version int32, t *tree.Tree) *Document {
	return &Document{URI: uri, Version: version, Tree: t, Lines: syntax.NewLineIndex(t.Text())}
}

// Store holds open documents. All documents share one node cache so that a
// reparse reuses the nodes of the previous tree.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	cache    *tree.NodeCache
	validate bool
	metrics  *metrics.Metrics
}

func NewStore(cache *tree.NodeCache, validate bool, m *metrics.Metrics) *Store {
	return &Store{docs: map[string]*Document{}, cache: cache, validate: validate, metrics: m}
}

// Open parses text and stores it under uri, replacing any previous version.
func (s *Store) Open(uri string, version int32, text string) *Document {
	start := time.Now()
	t := tree.Parse(text, tree.WithCache(s.cache))
	if s.metrics != nil {
		s.metrics.ObserveParse(t, time.Since(start))
	}
	doc := newDocument(uri, version, t)

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *Store) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Change applies content changes in order. Ranged changes go through the
// incremental reparser; a whole-document change is a fresh parse.
func (s *Store) Change(uri string, version int32, changes []any) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				doc = newDocument(uri, version, tree.Parse(c.Text, tree.WithCache(s.cache)))
				continue
			}
			next, err := s.apply(doc, editOf(doc.Lines, *c.Range, c.Text))
			if err != nil {
				return nil, err
			}
			doc = newDocument(uri, version, next)
		case protocol.TextDocumentContentChangeEventWhole:
			doc = newDocument(uri, version, tree.Parse(c.Text, tree.WithCache(s.cache)))
		default:
			return nil, fmt.Errorf("unsupported content change %T", change)
		}
	}
	doc = &Document{URI: uri, Version: version, Tree: doc.Tree, Lines: doc.Lines}
	s.docs[uri] = doc
	return doc, nil
}

func (s *Store) apply(doc *Document, edit reparse.TextEdit) (*tree.Tree, error) {
	opts := []reparse.Option{reparse.WithCache(s.cache), reparse.WithValidation(s.validate)}
	if s.metrics != nil {
		opts = append(opts, reparse.WithObserver(s.metrics.ObserveReparse))
	}
	start := time.Now()
	next, strategy, err := reparse.Reparse(doc.Tree, edit, opts...)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveReparseTree(next, time.Since(start))
	}
	log.Debugf("%s: %s reparse for %s", doc.URI, strategy, edit)
	return next, nil
}

// editOf converts an LSP range, whose columns count UTF-16 code units, into
// a byte-offset edit.
func editOf(lines *syntax.LineIndex, r protocol.Range, text string) reparse.TextEdit {
	start := lines.OffsetUTF16(int(r.Start.Line), int(r.Start.Character))
	end := lines.OffsetUTF16(int(r.End.Line), int(r.End.Character))
	if end < start {
		start, end = end, start
	}
	return reparse.TextEdit{Delete: syntax.TextRange{Start: start, End: end}, Insert: text}
}

func (d *Document) position(offset int) protocol.Position {
	lc := d.Lines.LineCol(offset)
	return protocol.Position{
		Line:      protocol.UInteger(lc.Line),
		Character: protocol.UInteger(d.Lines.UTF16Col(lc)),
	}
}

func (d *Document) rangeOf(r syntax.TextRange) protocol.Range {
	return protocol.Range{Start: d.position(r.Start), End: d.position(r.End)}
}

func (d *Document) offset(p protocol.Position) int {
	return d.Lines.OffsetUTF16(int(p.Line), int(p.Character))
}
