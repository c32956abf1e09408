package parser

import "github.com/dhamidi/greenleaf/syntax"

// TokenSet is a set of token kinds.
type TokenSet [4]uint64

func NewTokenSet(kinds ...syntax.Kind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		if !k.IsToken() {
			panic("parser: token set of non-token kind " + k.String())
		}
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

func (s TokenSet) Contains(k syntax.Kind) bool {
	if !k.IsToken() {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

func (s TokenSet) Union(other TokenSet) TokenSet {
	return TokenSet{s[0] | other[0], s[1] | other[1], s[2] | other[2], s[3] | other[3]}
}
