package reparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dhamidi/greenleaf/tree"
)

// ErrMismatch is wrapped by the error Check returns when an incremental
// reparse disagrees with a full parse.
var ErrMismatch = errors.New("incremental reparse differs from full parse")

// Check parses text, reparses it incrementally after edit and compares the
// result with a full parse of the edited text.
func Check(text string, edit TextEdit) error {
	_, err := CheckStrategy(text, edit)
	return err
}

// CheckStrategy is Check that also reports the strategy used.
func CheckStrategy(text string, edit TextEdit) (Strategy, error) {
	cache := tree.NewNodeCache(tree.DefaultCacheSize)
	before := tree.Parse(text, tree.WithCache(cache))
	after, strategy, err := Reparse(before, edit, WithCache(cache))
	if err != nil {
		return strategy, err
	}
	if err := tree.CheckInvariants(after); err != nil {
		return strategy, fmt.Errorf("%w: %s reparse: %w", ErrMismatch, strategy, err)
	}

	full := tree.Parse(after.Text(), tree.WithCache(tree.NewNodeCache(0)))
	if err := compare(after, full); err != nil {
		return strategy, fmt.Errorf("%s reparse of %v: %w", strategy, edit, err)
	}
	return strategy, nil
}

// compare reports whether two trees agree on text, on the kind and range
// of every node in preorder and on their errors.
func compare(incremental, full *tree.Tree) error {
	if incremental.Text() != full.Text() || !sameShape(incremental, full) || !sameErrors(incremental, full) {
		return fmt.Errorf("%w\n%s", ErrMismatch, Diff(full, incremental))
	}
	return nil
}

func sameShape(a, b *tree.Tree) bool {
	as, bs := a.Root().Descendants(), b.Root().Descendants()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i].Kind() != bs[i].Kind() || as[i].TextRange() != bs[i].TextRange() {
			return false
		}
	}
	return true
}

func sameErrors(a, b *tree.Tree) bool {
	ae, be := a.Errors(), b.Errors()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}
	return true
}

// Diff renders a line diff between the debug dumps of want and got. Lines
// only in want start with "-", lines only in got with "+".
func Diff(want, got *tree.Tree) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(tree.DebugDump(want), tree.DebugDump(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
