package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DebugDump renders t as an indented outline, one element per line,
// followed by its errors.
//
//	SourceFile@[0; 6)
//	  FnDef@[0; 6)
//	    FnKw@[0; 2) "fn"
func DebugDump(t *Tree) string {
	var sb strings.Builder
	Fdump(&sb, t, false)
	return sb.String()
}

// Fdump writes the DebugDump rendering of t to w. With colored set, node
// kinds, leaves and errors are highlighted.
func Fdump(w io.Writer, t *Tree, colored bool) {
	kindColor := color.New(color.FgCyan)
	leafColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)
	if !colored {
		kindColor.DisableColor()
		leafColor.DisableColor()
		errColor.DisableColor()
	}

	t.Root().Walk(func(n *SyntaxNode) bool {
		depth := len(n.Ancestors()) - 1
		indent := strings.Repeat("  ", depth)
		if n.IsLeaf() {
			fmt.Fprintf(w, "%s%s@%s %s\n", indent, n.Kind(), n.TextRange(), leafColor.Sprintf("%q", n.Text()))
			return true
		}
		fmt.Fprintf(w, "%s%s@%s\n", indent, kindColor.Sprint(n.Kind()), n.TextRange())
		return true
	})
	for _, e := range t.Errors() {
		fmt.Fprintf(w, "%s\n", errColor.Sprintf("error %s: %s", e.Range, e.Message))
	}
}
