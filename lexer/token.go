// Package lexer implements the terminal recognizers and longest/priority
// matcher that parsus' backtracking engine drives. A Token carries stable
// identity: two literal tokens with identical text are still distinct
// tokens if registered separately. A Lexer turns a registered, ordered
// set of them plus an input string into TokenMatch values at a given
// offset.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// matcher recognizes a token's text at a specific offset in input. It must
// not consult or mutate any state outside the (input, offset) pair handed
// to it: Lexer relies on that for memoization correctness.
type matcher interface {
	match(input string, offset int) (length int, ok bool)
}

type literalMatcher struct {
	text       string
	ignoreCase bool
}

func (m literalMatcher) match(input string, offset int) (int, bool) {
	if offset+len(m.text) > len(input) {
		return 0, false
	}
	seg := input[offset : offset+len(m.text)]
	if m.ignoreCase {
		if strings.EqualFold(seg, m.text) {
			return len(m.text), true
		}
		return 0, false
	}
	if seg == m.text {
		return len(m.text), true
	}
	return 0, false
}

type regexMatcher struct {
	re         *regexp.Regexp
	allowEmpty bool
}

func (m regexMatcher) match(input string, offset int) (int, bool) {
	// FindStringIndex scans the whole remainder and we discard anything not
	// anchored at 0; an explicit \A prefix on the pattern would let the
	// regexp engine itself refuse non-offset matches instead.
	loc := m.re.FindStringIndex(input[offset:])
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	if loc[1] == 0 && !m.allowEmpty {
		return 0, false
	}
	return loc[1], true
}

type eofMatcher struct{}

func (eofMatcher) match(input string, offset int) (int, bool) {
	if offset == len(input) {
		return 0, true
	}
	return 0, false
}

// Token is a terminal recognizer with stable identity: matcher equality is
// not identity. Two Tokens built from the same literal text are distinct
// once registered separately. Compare Tokens by pointer.
type Token struct {
	name       string
	matcher    matcher
	ignored    bool
	firstChars string
}

// NewLiteralToken registers an exact-substring terminal. When ignoreCase is
// true, matching uses case-folded comparison. firstChars is an optional
// quick-rejection hint: if non-empty, the lexer skips the full matcher call
// whenever the byte at the candidate offset isn't one of these characters.
// Pass "" to always attempt the match.
func NewLiteralToken(name, text string, ignoreCase, ignored bool, firstChars string) *Token {
	return &Token{
		name:       name,
		matcher:    literalMatcher{text: text, ignoreCase: ignoreCase},
		ignored:    ignored,
		firstChars: firstChars,
	}
}

// NewRegexToken registers a regex terminal. The regex is matched anchored
// at the candidate offset (it must match starting exactly there, not
// somewhere later in the string); it must not match an empty string unless
// allowEmpty is true.
func NewRegexToken(name string, re *regexp.Regexp, ignored, allowEmpty bool, firstChars string) *Token {
	return &Token{
		name:       name,
		matcher:    regexMatcher{re: re, allowEmpty: allowEmpty},
		ignored:    ignored,
		firstChars: firstChars,
	}
}

// Name returns the token's human-readable name, used in error messages.
func (t *Token) Name() string {
	if t == EofToken {
		return "EOF"
	}
	return t.name
}

func (t *Token) String() string {
	return t.Name()
}

// Ignored reports whether matches of this token are consumed silently by
// the lexer instead of surfacing to parsers.
func (t *Token) Ignored() bool {
	return t.ignored
}

// EofToken is the special sentinel that matches a zero-length occurrence
// at the end of input, and nowhere else. It is never registered alongside
// ordinary tokens; the engine wraps the root parser to demand it directly.
var EofToken = &Token{name: "EOF", matcher: eofMatcher{}}

// UnknownToken is the diagnostic sentinel a Lexer reports when asked what
// sits at an offset that isn't end-of-input but that no registered token
// recognizes, so a MismatchedToken error always has something concrete
// to name as "actual" instead of degrading to a bare "nothing matched"
// once every registered token's firstChars hint has rejected it.
var UnknownToken = &Token{name: "<unknown>"}

// TokenMatch is a concrete occurrence of a Token at a specific offset and
// length within some input string.
type TokenMatch struct {
	Token  *Token
	Offset int
	Length int
	source string
}

// NewTokenMatch builds a TokenMatch, validating the invariants from the
// data model: 0 <= offset, offset+length <= len(source).
func NewTokenMatch(token *Token, offset, length int, source string) TokenMatch {
	if offset < 0 || offset+length > len(source) {
		panic(fmt.Sprintf("lexer: invalid token match for %s at [%d,%d) in input of length %d", token.Name(), offset, offset+length, len(source)))
	}
	return TokenMatch{Token: token, Offset: offset, Length: length, source: source}
}

// Text returns the matched substring.
func (m TokenMatch) Text() string {
	return m.source[m.Offset : m.Offset+m.Length]
}

func (m TokenMatch) String() string {
	return fmt.Sprintf("%s(%q)@%d", m.Token.Name(), m.Text(), m.Offset)
}
