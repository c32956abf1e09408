package parser

import (
	"strings"

	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/syntax"
)

// Sink receives the tree described by an event list, depth first.
type Sink interface {
	Leaf(kind syntax.Kind, text string)
	StartBranch(kind syntax.Kind)
	FinishBranch()
	Error(message string)
}

// Process replays events into sink. Trivia never produces events, so it is
// interleaved here: whitespace and comments go in front of the node that
// follows them, except that comments directly above an item are attached
// to the item. Trivia at the end of the file goes under the root.
//
// Process rewrites forward-parent links in events as it resolves them.
func Process(sink Sink, text string, tokens []lexer.Token, events []Event) {
	pr := &processor{sink: sink, text: text, tokens: tokens}
	var kinds []syntax.Kind

	for i := range events {
		ev := events[i]
		switch ev.Kind {
		case EventStart:
			if ev.NodeKind == syntax.Tombstone {
				continue
			}
			// Walk the forward-parent chain. The outermost parent is
			// opened first.
			kinds = append(kinds[:0], ev.NodeKind)
			idx, fp := i, ev.ForwardParent
			for fp != 0 {
				idx += fp
				parent := events[idx]
				events[idx] = tombstone()
				kinds = append(kinds, parent.NodeKind)
				fp = parent.ForwardParent
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				pr.startNode(kinds[j])
			}
		case EventFinish:
			pr.finishNode()
		case EventToken:
			pr.token(ev.NodeKind, ev.NRawTokens)
		case EventError:
			pr.sink.Error(ev.Message)
		}
	}
}

type processor struct {
	sink    Sink
	text    string
	tokens  []lexer.Token
	tokPos  int
	textPos int
	depth   int
}

func (pr *processor) token(kind syntax.Kind, n int) {
	pr.eatTrivia()
	width := 0
	for i := 0; i < n; i++ {
		width += pr.tokens[pr.tokPos+i].Len
	}
	pr.leaf(kind, n, width)
}

func (pr *processor) leaf(kind syntax.Kind, n, width int) {
	pr.sink.Leaf(kind, pr.text[pr.textPos:pr.textPos+width])
	pr.tokPos += n
	pr.textPos += width
}

func (pr *processor) startNode(kind syntax.Kind) {
	if pr.depth == 0 {
		pr.depth++
		pr.sink.StartBranch(kind)
		return
	}

	n := 0
	for pr.tokPos+n < len(pr.tokens) && pr.tokens[pr.tokPos+n].Kind.IsTrivia() {
		n++
	}
	attached := pr.attachedTrivia(kind, n)
	pr.eatN(n - attached)
	pr.sink.StartBranch(kind)
	pr.eatN(attached)
	pr.depth++
}

func (pr *processor) finishNode() {
	pr.depth--
	if pr.depth == 0 {
		pr.eatTrivia()
	}
	pr.sink.FinishBranch()
}

func (pr *processor) eatTrivia() {
	for pr.tokPos < len(pr.tokens) && pr.tokens[pr.tokPos].Kind.IsTrivia() {
		tok := pr.tokens[pr.tokPos]
		pr.leaf(tok.Kind, 1, tok.Len)
	}
}

func (pr *processor) eatN(n int) {
	for i := 0; i < n; i++ {
		tok := pr.tokens[pr.tokPos]
		pr.leaf(tok.Kind, 1, tok.Len)
	}
}

// attachedTrivia counts how many of the n trivia tokens ahead belong to a
// node of the given kind. Items keep the comments directly above them; a
// blank line breaks the attachment.
func (pr *processor) attachedTrivia(kind syntax.Kind, n int) int {
	if !attachesComments(kind) {
		return 0
	}
	offsets := make([]int, n+1)
	offsets[0] = pr.textPos
	for i := 0; i < n; i++ {
		offsets[i+1] = offsets[i] + pr.tokens[pr.tokPos+i].Len
	}

	res := 0
	for i := n - 1; i >= 0; i-- {
		tok := pr.tokens[pr.tokPos+i]
		text := pr.text[offsets[i]:offsets[i+1]]
		if tok.Kind == syntax.Whitespace && strings.Contains(text, "\n\n") {
			break
		}
		if tok.Kind == syntax.Comment {
			res = n - i
		}
	}
	return res
}

func attachesComments(kind syntax.Kind) bool {
	switch kind {
	case syntax.FnDef, syntax.StructDef, syntax.EnumDef, syntax.UnionDef,
		syntax.TraitDef, syntax.ImplBlock, syntax.Module, syntax.ConstDef,
		syntax.StaticDef, syntax.TypeAliasDef, syntax.UseItem, syntax.MacroCall,
		syntax.EnumVariant, syntax.NamedFieldDef:
		return true
	}
	return false
}
