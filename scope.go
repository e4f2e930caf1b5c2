package parsus

import (
	"fmt"

	"github.com/bliessens/parsus/lexer"
)

// ParsingScope is the capability set exposed inside a running parser
// body: invoke a sub-parser, try one without failing the branch, fail
// outright, or query position/lookahead without consuming. A ParsingScope
// is only valid for the duration of the parsing session that created it.
// Capturing one and calling it after runParser has returned panics, caught
// via the epoch check every method performs.
type ParsingScope struct {
	ctx   *ParsingContext
	epoch int64
}

func (s *ParsingScope) checkLive() {
	if s.epoch != s.ctx.epoch {
		panic("parsus: ParsingScope used outside the parsing session that created it")
	}
}

// CurrentOffset returns the current position. Read-only, never suspends.
func (s *ParsingScope) CurrentOffset() int {
	s.checkLive()
	return s.ctx.position
}

// CurrentToken returns the lexer's priority match at the current
// position, or nil. Does not advance position, never suspends.
func (s *ParsingScope) CurrentToken() *lexer.TokenMatch {
	s.checkLive()
	return s.ctx.lex.FindMatch(s.ctx.position)
}

// TryToken is the pure-lexer scope primitive: on success it advances
// position and returns the match; on failure position is left untouched.
// It never suspends. No goroutine is spawned and no backtrack point is
// installed, unlike TryParse's parser-taking form.
func (s *ParsingScope) TryToken(t *lexer.Token) (*lexer.TokenMatch, bool) {
	s.checkLive()
	m := s.ctx.lex.MatchToken(t, s.ctx.position)
	if m == nil {
		s.ctx.recordDebug("token-miss", s.ctx.position)
		return nil, false
	}
	s.ctx.position = m.Offset + m.Length
	s.ctx.recordDebug("token-hit:"+t.Name(), m.Offset)
	return m, true
}

func (s *ParsingScope) child() *ParsingScope {
	return &ParsingScope{ctx: s.ctx, epoch: s.epoch}
}

// TryParse is the alternation-enabling primitive: it runs p to completion
// on a freshly spawned task, isolated from the caller's branch. On
// success, position stays advanced and the prior backtrack point is
// restored. On failure, position rolls back to its value at entry, the
// prior backtrack point is restored, and the error is returned as a value
// instead of propagating. This is the only recovery boundary in the
// engine.
func TryParse[R any](s *ParsingScope, p Parser[R]) ParseResult[R] {
	s.checkLive()
	ctx := s.ctx
	savedPos := ctx.position
	ctx.backtrackDepth++
	ctx.recordDebug("tryParse-enter:"+p.name, savedPos)

	tr := spawnParser(ctx, s, p)

	ctx.backtrackDepth--
	if tr.err != nil {
		ctx.position = savedPos
		ctx.recordDebug("tryParse-fail:"+p.name, savedPos)
		return Failure[R](tr.err)
	}
	ctx.recordDebug("tryParse-ok:"+p.name, ctx.position)
	return Success(tr.value)
}

// Run invokes a sub-parser: on success it returns the value and advances
// position; on failure it calls Fail, propagating to the nearest
// enclosing alternation. Run is TryParse plus automatic re-fail; it
// installs no recovery boundary of its own.
func Run[R any](s *ParsingScope, p Parser[R]) R {
	res := TryParse(s, p)
	if !res.IsSuccess() {
		return Fail[R](s, res.Error())
	}
	return res.Value()
}

// Fail abandons the current branch, transferring control to the nearest
// installed backtrack point, which restores position. If no backtrack
// point is installed, the session ends and runParser returns err as the
// final result.
func Fail[R any](s *ParsingScope, err *ParseError) R {
	s.checkLive()
	panic(failSignal{err: err})
}

// Skip runs p and discards its value.
func Skip[R any](s *ParsingScope, p Parser[R]) {
	Run(s, p)
}

// CheckPresent reports whether p succeeds here. It is positioned exactly
// as TryParse leaves it: advanced past p's match on success, rolled back
// to where it started on failure. It is not a non-consuming lookahead.
func CheckPresent[R any](s *ParsingScope, p Parser[R]) bool {
	return TryParse(s, p).IsSuccess()
}

// TokenParser lifts a single token into a Parser[*lexer.TokenMatch],
// letting a token be composed through Run/TryParse/Or like any other
// parser. It distinguishes KindUnmatchedToken (the lexer is at the end of
// input, modulo ignored tokens) from KindMismatchedToken (there is
// unconsumed input, whether or not any registered token recognizes it) by
// consulting the lexer's Diagnose.
func TokenParser(t *lexer.Token) Parser[*lexer.TokenMatch] {
	return New(t.Name(), func(s *ParsingScope) *lexer.TokenMatch {
		if m, ok := s.TryToken(t); ok {
			return m
		}
		actual := s.ctx.lex.Diagnose(s.ctx.position)
		if actual.Token == lexer.EofToken {
			return Fail[*lexer.TokenMatch](s, UnmatchedToken(t, actual.Offset))
		}
		return Fail[*lexer.TokenMatch](s, MismatchedToken(t, &actual))
	})
}

func (s *ParsingScope) String() string {
	return fmt.Sprintf("ParsingScope@%d", s.ctx.position)
}
