// Package parsus implements the backtracking engine of a parser-combinator
// library: a Parser is a function from a ParsingScope to a value that may
// invoke other parsers and may fail; a ParsingContext drives one such
// parser to completion over an input string via a trampoline that
// installs and restores backtrack points in constant time per
// alternative, without growing any single native call stack proportional
// to the number of alternatives tried.
//
// Tokens and the longest/priority lexer they're matched through live in
// the sibling package github.com/bliessens/parsus/lexer. Public combinator
// sugar (Map, Or, Many, Separated, LeftAssociative, and the literal/regex
// token constructors) lives in github.com/bliessens/parsus/combinator:
// thin wrappers over the primitives exposed here (Run, TryParse, Fail,
// TokenParser).
package parsus
