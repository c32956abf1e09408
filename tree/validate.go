package tree

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error CheckInvariants returns.
var ErrInvariant = errors.New("tree invariant violated")

// CheckInvariants verifies the structural guarantees every tree must
// satisfy: the tree spells its text exactly, every branch is as wide as its
// children, sibling ranges are contiguous, and errors are sorted and in
// bounds.
func CheckInvariants(t *Tree) error {
	root := t.Root()
	if got := root.Text(); got != t.Text() {
		return fmt.Errorf("%w: tree text differs from source (%d vs %d bytes)", ErrInvariant, len(got), len(t.Text()))
	}

	var err error
	root.Walk(func(n *SyntaxNode) bool {
		if err != nil {
			return false
		}
		if n.IsLeaf() {
			if n.Green().Width() == 0 {
				err = fmt.Errorf("%w: empty leaf %v at %v", ErrInvariant, n.Kind(), n.TextRange())
			}
			return false
		}
		next := n.TextRange().Start
		for _, c := range n.Children() {
			r := c.TextRange()
			if r.Start != next {
				err = fmt.Errorf("%w: %v at %v is not contiguous with its previous sibling", ErrInvariant, c.Kind(), r)
				return false
			}
			next = r.End
		}
		if next != n.TextRange().End {
			err = fmt.Errorf("%w: children of %v do not cover %v", ErrInvariant, n.Kind(), n.TextRange())
		}
		return true
	})
	if err != nil {
		return err
	}

	prev := 0
	for _, e := range t.Errors() {
		if e.Range.Start < prev || e.Range.End > len(t.Text()) {
			return fmt.Errorf("%w: error %q at %v is out of order or bounds", ErrInvariant, e.Message, e.Range)
		}
		prev = e.Range.Start
	}
	return nil
}
