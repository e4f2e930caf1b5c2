// Package combinator is a thin public sugar layer over parsus's core
// engine: Map, Or, Seq, LeftAssociative, Many, Separated, and the
// Literal/Regex token-parser constructors. None of these do anything a
// caller couldn't write directly against Run/TryParse/Fail/TokenParser;
// they exist so a grammar reads declaratively.
package combinator

import (
	"regexp"

	"github.com/bliessens/parsus"
	"github.com/bliessens/parsus/lexer"
)

// Literal builds a token parser for an exact-substring terminal and
// registers it on tokens. firstChars is an optional quick-rejection hint
// (see lexer.NewLiteralToken); pass "" to always attempt the match.
func Literal(tokens *parsus.TokenSet, name, text string, firstChars string) parsus.Parser[*lexer.TokenMatch] {
	t := lexer.NewLiteralToken(name, text, false, false, firstChars)
	if err := tokens.Register(t); err != nil {
		panic(err)
	}
	return parsus.TokenParser(t)
}

// Regex builds a token parser for a regex terminal and registers it on
// tokens. The pattern is matched anchored at the candidate offset; it must
// not match empty.
func Regex(tokens *parsus.TokenSet, name, pattern string, firstChars string) parsus.Parser[*lexer.TokenMatch] {
	t := lexer.NewRegexToken(name, regexp.MustCompile(pattern), false, false, firstChars)
	if err := tokens.Register(t); err != nil {
		panic(err)
	}
	return parsus.TokenParser(t)
}

// Ignored registers a regex terminal as an ignored (skipped) token,
// typically whitespace or comments, and returns nothing, since ignored
// tokens never surface as parser results.
func Ignored(tokens *parsus.TokenSet, name, pattern string) {
	t := lexer.NewRegexToken(name, regexp.MustCompile(pattern), true, false, "")
	if err := tokens.Register(t); err != nil {
		panic(err)
	}
}

// Map transforms a parser's result with f, running entirely inside the
// wrapped parser's own scope: f sees no suspension and cannot itself fail.
// Build on TryParse/Fail directly if it needs to.
func Map[A, B any](p parsus.Parser[A], f func(A) B) parsus.Parser[B] {
	return parsus.New(p.Name(), func(s *parsus.ParsingScope) B {
		return f(parsus.Run(s, p))
	})
}

// Or tries each alternative in order via TryParse, committing to the first
// one that succeeds. If every alternative fails, it fails with
// NoViableAlternative aggregating every branch's cause: furthest offset
// wins, ties broken in favor of the later alternative.
func Or[R any](alts ...parsus.Parser[R]) parsus.Parser[R] {
	return parsus.New("or", func(s *parsus.ParsingScope) R {
		offset := s.CurrentOffset()
		causes := make([]*parsus.ParseError, 0, len(alts))
		for _, alt := range alts {
			res := parsus.TryParse(s, alt)
			if res.IsSuccess() {
				return res.Value()
			}
			causes = append(causes, res.Error())
		}
		return parsus.Fail[R](s, parsus.NewNoViableAlternative(offset, causes))
	})
}

// Seq runs a then b in sequence, combining both results with f. A failure
// in either propagates via Run, so a failed b still leaves a's consumed
// input behind. Seq installs no recovery boundary of its own; wrap the
// whole thing in TryParse/Or at the call site if that's needed.
func Seq[A, B, R any](a parsus.Parser[A], b parsus.Parser[B], f func(A, B) R) parsus.Parser[R] {
	return parsus.New("seq", func(s *parsus.ParsingScope) R {
		first := parsus.Run(s, a)
		second := parsus.Run(s, b)
		return f(first, second)
	})
}

// Then is Seq specialized to discard the first result, keeping only b's:
// the common "skip a delimiter" shape.
func Then[A, B any](a parsus.Parser[A], b parsus.Parser[B]) parsus.Parser[B] {
	return Seq(a, b, func(_ A, second B) B { return second })
}

// SkipThen is Seq specialized to discard the second result, keeping only
// a's: the common "require a trailing delimiter" shape.
func SkipThen[A, B any](a parsus.Parser[A], b parsus.Parser[B]) parsus.Parser[A] {
	return Seq(a, b, func(first A, _ B) A { return first })
}

// Many repeats p zero or more times, collecting every successful value,
// and stops at the first failure (which is discarded; Many never fails on
// its own account; use AtLeast for a lower bound).
func Many[R any](p parsus.Parser[R]) parsus.Parser[[]R] {
	return parsus.New("many", func(s *parsus.ParsingScope) []R {
		var out []R
		for {
			res := parsus.TryParse(s, p)
			if !res.IsSuccess() {
				return out
			}
			out = append(out, res.Value())
		}
	})
}

// AtLeast repeats p and fails with NotEnoughRepetition if fewer than min
// occurrences were found.
func AtLeast[R any](min int, p parsus.Parser[R]) parsus.Parser[[]R] {
	return parsus.New("atLeast", func(s *parsus.ParsingScope) []R {
		offset := s.CurrentOffset()
		out := parsus.Run(s, Many(p))
		if len(out) < min {
			return parsus.Fail[[]R](s, parsus.NotEnoughRepetition(min, len(out), offset))
		}
		return out
	})
}

// Separated parses one or more occurrences of item separated by sep,
// discarding the separators' values and requiring at least one item. Once
// a separator has matched, the following item is mandatory: a dangling
// trailing separator fails hard at the item's position instead of being
// silently absorbed, so the caller sees the furthest point the grammar
// actually committed to.
func Separated[R, S any](item parsus.Parser[R], sep parsus.Parser[S]) parsus.Parser[[]R] {
	return parsus.New("separated", func(s *parsus.ParsingScope) []R {
		out := []R{parsus.Run(s, item)}
		for {
			sepRes := parsus.TryParse(s, sep)
			if !sepRes.IsSuccess() {
				return out
			}
			out = append(out, parsus.Run(s, item))
		}
	})
}

// LeftAssociative parses item (op item)* and folds the results left to
// right: ((item0 op1 item1) op2 item2) ..., the standard shape for
// left-associative binary operators. The operator is tried backtrackably
// (running out of operators just ends the loop), but once one matches,
// the operand that follows is mandatory: a dangling trailing operator
// fails hard at the offset the missing operand was required, instead of
// being discarded and masked by whatever is left over after backtracking
// it all away.
func LeftAssociative[R, O any](item parsus.Parser[R], op parsus.Parser[O], combine func(left R, op O, right R) R) parsus.Parser[R] {
	return parsus.New("leftAssociative", func(s *parsus.ParsingScope) R {
		acc := parsus.Run(s, item)
		for {
			opRes := parsus.TryParse(s, op)
			if !opRes.IsSuccess() {
				return acc
			}
			right := parsus.Run(s, item)
			acc = combine(acc, opRes.Value(), right)
		}
	})
}
