package parsus

import (
	"regexp"

	"github.com/bliessens/parsus/lexer"
)

// newTestLiteralToken and friends back the hand-rolled parsers in this
// package's own tests. The combinator package (Literal/Regex/Map/Or/...)
// is the real public surface for building grammars; these tests exercise
// the root engine directly, without depending on it.

func newTestLiteralToken(name, text string) *lexer.Token {
	return lexer.NewLiteralToken(name, text, false, false, "")
}

func newTestIgnoredToken(name, pattern string) *lexer.Token {
	return lexer.NewRegexToken(name, regexp.MustCompile(pattern), true, false, "")
}

// literalParser builds a Parser that consumes exactly one occurrence of t,
// returning its matched text.
func literalParser(t *lexer.Token) Parser[string] {
	return New(t.Name(), func(s *ParsingScope) string {
		return Run(s, TokenParser(t)).Text()
	})
}

// failingParser always fails with the given error, without consuming.
func failingParser[R any](err *ParseError) Parser[R] {
	return New("<fail>", func(s *ParsingScope) R {
		return Fail[R](s, err)
	})
}
