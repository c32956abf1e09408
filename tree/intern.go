package tree

import (
	"sync"

	"github.com/dhamidi/greenleaf/syntax"
)

const (
	nNewlines = 16
	nSpaces   = 64
)

var (
	internOnce  sync.Once
	wsLeaves    [nNewlines + 1][nSpaces + 1]*GreenNode
	fixedLeaves map[syntax.Kind]*GreenNode
)

func initIntern() {
	for nl := 0; nl <= nNewlines; nl++ {
		for sp := 0; sp <= nSpaces; sp++ {
			if nl == 0 && sp == 0 {
				continue
			}
			wsLeaves[nl][sp] = NewLeaf(syntax.Whitespace, whitespaceText(nl, sp))
		}
	}
	fixedLeaves = make(map[syntax.Kind]*GreenNode)
	for k := syntax.Kind(0); k.IsToken(); k++ {
		if text, ok := syntax.FixedText(k); ok {
			fixedLeaves[k] = NewLeaf(k, text)
		}
	}
}

func whitespaceText(newlines, spaces int) string {
	buf := make([]byte, 0, newlines+spaces)
	for i := 0; i < newlines; i++ {
		buf = append(buf, '\n')
	}
	for i := 0; i < spaces; i++ {
		buf = append(buf, ' ')
	}
	return string(buf)
}

// internedLeaf returns a preallocated leaf for fixed-text tokens and for
// the common indentation shape of up to 16 newlines followed by up to 64
// spaces.
func internedLeaf(kind syntax.Kind, text string) (*GreenNode, bool) {
	internOnce.Do(initIntern)

	if kind == syntax.Whitespace {
		nl := 0
		for nl < len(text) && text[nl] == '\n' {
			nl++
		}
		sp := len(text) - nl
		if nl > nNewlines || sp > nSpaces {
			return nil, false
		}
		for i := nl; i < len(text); i++ {
			if text[i] != ' ' {
				return nil, false
			}
		}
		return wsLeaves[nl][sp], sp+nl > 0
	}

	leaf, ok := fixedLeaves[kind]
	if !ok {
		return nil, false
	}
	if fixed, _ := syntax.FixedText(kind); fixed != text {
		return nil, false
	}
	return leaf, true
}
