package tree

import (
	"github.com/dhamidi/greenleaf/syntax"
)

// SyntaxNode is a green node seen from a particular position in a
// particular tree. It is created on demand while navigating and is cheap
// to throw away. Leaves and branches are both SyntaxNodes.
type SyntaxNode struct {
	green  *GreenNode
	parent *SyntaxNode
	index  int
	offset int
}

// NewRoot returns the red view of a root green node.
func NewRoot(green *GreenNode) *SyntaxNode {
	return &SyntaxNode{green: green}
}

func (n *SyntaxNode) Kind() syntax.Kind { return n.green.kind }

func (n *SyntaxNode) Green() *GreenNode { return n.green }

func (n *SyntaxNode) IsLeaf() bool { return n.green.leaf }

// Parent returns nil for the root.
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }

// Index returns the position of n among its parent's children.
func (n *SyntaxNode) Index() int { return n.index }

func (n *SyntaxNode) TextRange() syntax.TextRange {
	return syntax.NewRange(n.offset, n.green.width)
}

// Text returns the source text n spans.
func (n *SyntaxNode) Text() string { return n.green.Text() }

func (n *SyntaxNode) ChildCount() int { return len(n.green.children) }

// Child returns the i-th child, or nil when out of range.
func (n *SyntaxNode) Child(i int) *SyntaxNode {
	if i < 0 || i >= len(n.green.children) {
		return nil
	}
	offset := n.offset
	for _, c := range n.green.children[:i] {
		offset += c.width
	}
	return &SyntaxNode{green: n.green.children[i], parent: n, index: i, offset: offset}
}

// Children returns all children in order.
func (n *SyntaxNode) Children() []*SyntaxNode {
	out := make([]*SyntaxNode, len(n.green.children))
	offset := n.offset
	for i, c := range n.green.children {
		out[i] = &SyntaxNode{green: c, parent: n, index: i, offset: offset}
		offset += c.width
	}
	return out
}

func (n *SyntaxNode) FirstChild() *SyntaxNode {
	return n.Child(0)
}

func (n *SyntaxNode) LastChild() *SyntaxNode {
	return n.Child(len(n.green.children) - 1)
}

func (n *SyntaxNode) NextSibling() *SyntaxNode {
	if n.parent == nil || n.index+1 >= len(n.parent.green.children) {
		return nil
	}
	return &SyntaxNode{green: n.parent.green.children[n.index+1], parent: n.parent, index: n.index + 1, offset: n.offset + n.green.width}
}

func (n *SyntaxNode) PrevSibling() *SyntaxNode {
	if n.parent == nil || n.index == 0 {
		return nil
	}
	prev := n.parent.green.children[n.index-1]
	return &SyntaxNode{green: prev, parent: n.parent, index: n.index - 1, offset: n.offset - prev.width}
}

// Ancestors returns n and its ancestors, innermost first.
func (n *SyntaxNode) Ancestors() []*SyntaxNode {
	var out []*SyntaxNode
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// Descendants returns n and every node below it in preorder.
func (n *SyntaxNode) Descendants() []*SyntaxNode {
	var out []*SyntaxNode
	n.Walk(func(d *SyntaxNode) bool {
		out = append(out, d)
		return true
	})
	return out
}

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the children of the node just visited.
func (n *SyntaxNode) Walk(fn func(*SyntaxNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// FirstLeaf returns the leftmost leaf under n, or nil for an empty branch.
func (n *SyntaxNode) FirstLeaf() *SyntaxNode {
	cur := n
	for !cur.IsLeaf() {
		next := cur.FirstChild()
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// NextLeaf returns the leaf that follows n in text order.
func (n *SyntaxNode) NextLeaf() *SyntaxNode {
	for cur := n; cur != nil; cur = cur.parent {
		for sib := cur.NextSibling(); sib != nil; sib = sib.NextSibling() {
			if leaf := sib.FirstLeaf(); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

// PrevLeaf returns the leaf that precedes n in text order.
func (n *SyntaxNode) PrevLeaf() *SyntaxNode {
	for cur := n; cur != nil; cur = cur.parent {
		for sib := cur.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
			if leaf := sib.lastLeaf(); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

func (n *SyntaxNode) lastLeaf() *SyntaxNode {
	cur := n
	for !cur.IsLeaf() {
		next := cur.LastChild()
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// CoveringElement returns the deepest node whose range contains r. When r
// is empty and sits on a boundary, the element to the left wins.
func (n *SyntaxNode) CoveringElement(r syntax.TextRange) *SyntaxNode {
	cur := n
	for !cur.IsLeaf() {
		var next *SyntaxNode
		for _, c := range cur.Children() {
			cr := c.TextRange()
			if cr.ContainsRange(r) && (cr.Len() > 0 || r.IsEmpty()) {
				next = c
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
	return cur
}

// LeafAtOffset returns the leaves touching offset: the one ending there
// and the one starting there. Inside a leaf both results are that leaf.
func (n *SyntaxNode) LeafAtOffset(offset int) (left, right *SyntaxNode) {
	if !n.TextRange().ContainsInclusive(offset) {
		return nil, nil
	}
	cur := n
	for !cur.IsLeaf() {
		var next *SyntaxNode
		for _, c := range cur.Children() {
			cr := c.TextRange()
			if cr.Start < offset && offset < cr.End {
				next = c
				break
			}
			if cr.End == offset && cr.Len() > 0 {
				left = c.lastLeaf()
			}
			if cr.Start == offset && cr.Len() > 0 && right == nil {
				right = c.FirstLeaf()
			}
		}
		if next == nil {
			return left, right
		}
		cur = next
	}
	return cur, cur
}

// ReplaceWith returns a new root in which n's green node is replaced by
// replacement. Only the path from n to the root is copied.
func (n *SyntaxNode) ReplaceWith(replacement *GreenNode, cache *NodeCache) *GreenNode {
	green := replacement
	for cur := n; cur.parent != nil; cur = cur.parent {
		siblings := cur.parent.green.children
		children := make([]*GreenNode, len(siblings))
		copy(children, siblings)
		children[cur.index] = green
		green = cache.Branch(cur.parent.green.kind, children)
	}
	return green
}
