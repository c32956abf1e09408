package reparse

import (
	"math/rand/v2"

	"github.com/dhamidi/greenleaf/syntax"
)

// fragments are the snippets random edits insert. They are biased towards
// tokens that change structure: braces, separators, keywords.
var fragments = []string{
	"", "x", "foo", "1", "2.5", " ", "  ", "\n", "\n\n", ";", ",", ".", "..",
	"{", "}", "(", ")", "[", "]", "<", ">", "=", "==", "+", "-", "*", "&",
	"|", "!", "?", ":", "::", "->", "=>", "'a", "\"s\"", "// c\n", "/* c */",
	"let y = 2;", "fn g() {}", "struct S { a: u8 }", "if x { 1 } else { 2 }",
	"match x { _ => () }", "union", "S { a: 1 }", "#[attr]", "pub ", "mut ",
}

// RandomEdit returns a small edit within text. Offsets fall on UTF-8
// boundaries.
func RandomEdit(r *rand.Rand, text string) TextEdit {
	start := boundary(text, r.IntN(len(text)+1))
	end := start
	if start < len(text) && r.IntN(2) == 0 {
		end = boundary(text, min(len(text), start+1+r.IntN(8)))
	}
	return TextEdit{
		Delete: syntax.TextRange{Start: start, End: end},
		Insert: fragments[r.IntN(len(fragments))],
	}
}

func boundary(text string, offset int) int {
	for offset < len(text) && !onBoundary(text, offset) {
		offset++
	}
	return offset
}

// Failure is one edit whose incremental reparse disagreed with a full
// parse.
type Failure struct {
	Text string
	Edit TextEdit
	Err  error
}

// Report summarizes a random edit session.
type Report struct {
	Edits      int
	Strategies map[Strategy]int
	Failures   []Failure
}

// CheckRandom applies n random edits to text one after another and checks
// each incremental reparse against a full parse.
func CheckRandom(text string, n int, seed uint64) Report {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	report := Report{Strategies: map[Strategy]int{}}
	for range n {
		edit := RandomEdit(r, text)
		strategy, err := CheckStrategy(text, edit)
		report.Edits++
		report.Strategies[strategy]++
		if err != nil {
			report.Failures = append(report.Failures, Failure{Text: text, Edit: edit, Err: err})
			continue
		}
		// Cannot fail: RandomEdit stays in bounds.
		text, _ = edit.Apply(text)
	}
	return report
}
