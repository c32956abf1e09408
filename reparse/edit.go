package reparse

import (
	"errors"
	"fmt"

	"github.com/dhamidi/greenleaf/syntax"
)

// ErrInvalidEdit is returned when an edit does not fit the text it is
// applied to.
var ErrInvalidEdit = errors.New("invalid edit")

// TextEdit replaces the bytes in Delete with Insert. An empty Delete is a
// pure insertion, an empty Insert a pure deletion.
type TextEdit struct {
	Delete syntax.TextRange
	Insert string
}

// Insertion returns an edit inserting text at offset.
func Insertion(offset int, text string) TextEdit {
	return TextEdit{Delete: syntax.TextRange{Start: offset, End: offset}, Insert: text}
}

// Deletion returns an edit removing r.
func Deletion(r syntax.TextRange) TextEdit {
	return TextEdit{Delete: r}
}

// Delta is the change in text length the edit causes.
func (e TextEdit) Delta() int {
	return len(e.Insert) - e.Delete.Len()
}

// Apply returns text with the edit applied.
func (e TextEdit) Apply(text string) (string, error) {
	if err := e.check(len(text)); err != nil {
		return "", err
	}
	return text[:e.Delete.Start] + e.Insert + text[e.Delete.End:], nil
}

// applyWithin applies the edit to text, the contents of r.
func (e TextEdit) applyWithin(text string, r syntax.TextRange) string {
	start := e.Delete.Start - r.Start
	end := e.Delete.End - r.Start
	return text[:start] + e.Insert + text[end:]
}

func (e TextEdit) check(size int) error {
	d := e.Delete
	if d.Start < 0 || d.End < d.Start || d.End > size {
		return fmt.Errorf("%w: %v in text of %d bytes", ErrInvalidEdit, d, size)
	}
	return nil
}

func (e TextEdit) String() string {
	return fmt.Sprintf("%v -> %q", e.Delete, e.Insert)
}
