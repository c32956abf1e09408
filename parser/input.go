package parser

import (
	"github.com/dhamidi/greenleaf/lexer"
	"github.com/dhamidi/greenleaf/syntax"
)

// input is the parser's view of the token stream: trivia removed, with
// enough position information left to answer adjacency questions.
type input struct {
	text   string
	kinds  []syntax.Kind
	starts []int
	lens   []int
}

func newInput(text string, raw []lexer.Token) *input {
	in := &input{text: text}
	offset := 0
	for _, tok := range raw {
		if !tok.Kind.IsTrivia() {
			in.kinds = append(in.kinds, tok.Kind)
			in.starts = append(in.starts, offset)
			in.lens = append(in.lens, tok.Len)
		}
		offset += tok.Len
	}
	return in
}

func (in *input) kind(i int) syntax.Kind {
	if i >= len(in.kinds) {
		return syntax.EOF
	}
	return in.kinds[i]
}

func (in *input) tokenText(i int) string {
	if i >= len(in.kinds) {
		return ""
	}
	return in.text[in.starts[i] : in.starts[i]+in.lens[i]]
}

// isJoint reports whether token i is immediately followed by token i+1
// with no trivia in between.
func (in *input) isJoint(i int) bool {
	if i+1 >= len(in.kinds) {
		return false
	}
	return in.starts[i]+in.lens[i] == in.starts[i+1]
}
