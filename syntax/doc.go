// Package syntax defines the vocabulary shared by the lexer, the parser and
// the syntax tree: the [Kind] enumeration that tags every token and node,
// the fixed spellings of keywords and punctuation, and [TextRange].
//
// Token kinds are numbered before node kinds. Composite punctuation comes
// in two flavours:
//
//	lexed:  ..  ...  ::  ->  =>  ==  !=
//	fused:  ..=  <=  >=  <<  >>  &&  ||  +=  -=  *=  /=  %=  &=  |=  ^=  <<=  >>=
//
// Fused kinds never come out of the lexer. The parser produces them from
// runs of adjacent single-character tokens, so that `Vec<Vec<T>>` can close
// two generic argument lists while `a >> b` is still a shift.
package syntax
