package syntax

import (
	"sort"
	"unicode/utf8"
)

// LineCol is a zero-based position. Col counts bytes from the start of the
// line.
type LineCol struct {
	Line int
	Col  int
}

// LineIndex converts between byte offsets and line/column positions.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// LineCount is the number of lines, counting a trailing empty one.
func (idx *LineIndex) LineCount() int { return len(idx.starts) }

// LineCol returns the position of offset. Offsets past the end clamp to
// the end of the text.
func (idx *LineIndex) LineCol(offset int) LineCol {
	offset = max(0, min(offset, len(idx.text)))
	line := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset }) - 1
	return LineCol{Line: line, Col: offset - idx.starts[line]}
}

// Offset returns the byte offset of pos, clamping to the line's end.
func (idx *LineIndex) Offset(pos LineCol) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(idx.starts) {
		return len(idx.text)
	}
	start := idx.starts[pos.Line]
	return start + min(max(pos.Col, 0), idx.lineEnd(pos.Line)-start)
}

// UTF16Col converts a byte column on line to UTF-16 code units.
func (idx *LineIndex) UTF16Col(pos LineCol) int {
	start := idx.starts[pos.Line]
	line := idx.text[start : start+pos.Col]
	n := 0
	for _, r := range line {
		n += utf16Len(r)
	}
	return n
}

// OffsetUTF16 returns the byte offset of a position whose column counts
// UTF-16 code units, as LSP clients send them.
func (idx *LineIndex) OffsetUTF16(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(idx.starts) {
		return len(idx.text)
	}
	offset := idx.starts[line]
	end := idx.lineEnd(line)
	for units := 0; offset < end && units < col; {
		r, size := utf8.DecodeRuneInString(idx.text[offset:])
		units += utf16Len(r)
		offset += size
	}
	return offset
}

// lineEnd is the offset of the newline ending line, or the text length.
func (idx *LineIndex) lineEnd(line int) int {
	if line+1 < len(idx.starts) {
		return idx.starts[line+1] - 1
	}
	return len(idx.text)
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
