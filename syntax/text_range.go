package syntax

import "fmt"

// TextRange is a half-open byte range [Start, End) into source text.
type TextRange struct {
	Start int
	End   int
}

// NewRange returns the range starting at start with length n.
func NewRange(start, n int) TextRange {
	return TextRange{Start: start, End: start + n}
}

// Len returns the number of bytes covered by r.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether r covers no bytes.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside r. The end is exclusive.
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsInclusive reports whether offset lies inside r or at its end.
func (r TextRange) ContainsInclusive(offset int) bool {
	return r.Start <= offset && offset <= r.End
}

// ContainsRange reports whether other lies entirely inside r.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Shift returns r moved by delta bytes.
func (r TextRange) Shift(delta int) TextRange {
	return TextRange{Start: r.Start + delta, End: r.End + delta}
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d; %d)", r.Start, r.End)
}
