package tree

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/dhamidi/greenleaf/syntax"
)

// GreenNode is an immutable, position-independent tree element. Leaves
// hold a token kind and text; branches hold a node kind and children.
// Green nodes know their width but not their offset, so identical
// subtrees can be shared between trees and between parses.
type GreenNode struct {
	kind     syntax.Kind
	leaf     bool
	width    int
	text     string
	children []*GreenNode
	hash     uint64
}

// NewLeaf returns a leaf. Leaves of fixed-text kinds do not store their
// text.
func NewLeaf(kind syntax.Kind, text string) *GreenNode {
	n := &GreenNode{kind: kind, leaf: true, width: len(text)}
	if fixed, ok := syntax.FixedText(kind); !ok || fixed != text {
		n.text = text
	}
	n.hash = hashLeaf(kind, text)
	return n
}

// NewBranch returns a branch over children.
func NewBranch(kind syntax.Kind, children []*GreenNode) *GreenNode {
	n := &GreenNode{kind: kind, children: children}
	for _, c := range children {
		n.width += c.width
	}
	n.hash = hashBranch(kind, children)
	return n
}

func (n *GreenNode) Kind() syntax.Kind { return n.kind }

// IsLeaf reports whether n is a token.
func (n *GreenNode) IsLeaf() bool { return n.leaf }

// Width returns the length in bytes of the text n spans.
func (n *GreenNode) Width() int { return n.width }

// Children returns the children of a branch. The slice must not be
// modified.
func (n *GreenNode) Children() []*GreenNode { return n.children }

// LeafText returns the text of a leaf.
func (n *GreenNode) LeafText() string {
	if !n.leaf {
		return ""
	}
	if n.text == "" && n.width > 0 {
		fixed, _ := syntax.FixedText(n.kind)
		return fixed
	}
	return n.text
}

// Text concatenates the text of all leaves under n.
func (n *GreenNode) Text() string {
	if n.leaf {
		return n.LeafText()
	}
	var sb strings.Builder
	sb.Grow(n.width)
	n.writeText(&sb)
	return sb.String()
}

func (n *GreenNode) writeText(sb *strings.Builder) {
	if n.leaf {
		sb.WriteString(n.LeafText())
		return
	}
	for _, c := range n.children {
		c.writeText(sb)
	}
}

// equal is structural equality for branches whose children are already
// deduplicated, so children compare by identity.
func (n *GreenNode) equal(other *GreenNode) bool {
	if n.kind != other.kind || n.leaf != other.leaf || n.width != other.width {
		return false
	}
	if n.leaf {
		return n.LeafText() == other.LeafText()
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if n.children[i] != other.children[i] {
			return false
		}
	}
	return true
}

func hashLeaf(kind syntax.Kind, text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte{'t', byte(kind >> 8), byte(kind)})
	h.Write([]byte(text))
	return h.Sum64()
}

func hashBranch(kind syntax.Kind, children []*GreenNode) uint64 {
	h := fnv.New64a()
	h.Write([]byte{'n', byte(kind >> 8), byte(kind)})
	var buf [8]byte
	for _, c := range children {
		v := c.hash
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (n *GreenNode) String() string {
	if n.leaf {
		return n.kind.String() + " " + strconv.Quote(n.LeafText())
	}
	return n.kind.String() + "@" + strconv.Itoa(n.width)
}
