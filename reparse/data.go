package reparse

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/greenleaf/syntax"
)

// Records decoded by FromData are wrapped in a function body so that most
// edits land inside a block.
const (
	recordPrefix = "fn main() {\n    "
	recordSuffix = "\n}"
)

// FromData decodes an edit record: the delete offset on the first line,
// the delete length on the second, the inserted text on the third and the
// text to edit on the remaining lines. The offset is relative to the
// wrapped text. ok is false when data is not a well-formed record.
func FromData(data []byte) (text string, edit TextEdit, ok bool) {
	if !utf8.Valid(data) {
		return "", TextEdit{}, false
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 3 {
		return "", TextEdit{}, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return "", TextEdit{}, false
	}
	length, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return "", TextEdit{}, false
	}
	text = recordPrefix + strings.Join(lines[3:], "\n") + recordSuffix
	edit = TextEdit{Delete: syntax.TextRange{Start: start, End: start + length}, Insert: lines[2]}
	if start < 0 || length < 0 || edit.check(len(text)) != nil {
		return "", TextEdit{}, false
	}
	if !onBoundary(text, start) || !onBoundary(text, start+length) {
		return "", TextEdit{}, false
	}
	return text, edit, true
}

// CheckFromData runs Check on a record decoded by FromData. Malformed
// records are not an error.
func CheckFromData(data []byte) error {
	text, edit, ok := FromData(data)
	if !ok {
		return nil
	}
	return Check(text, edit)
}

func onBoundary(text string, offset int) bool {
	return offset == len(text) || utf8.RuneStart(text[offset])
}
