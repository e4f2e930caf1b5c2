package parsus

import (
	"time"

	"github.com/bliessens/parsus/lexer"
)

// DebugEvent is one entry of an optional trace of backtrack installs,
// restores, and token matches recorded during a session. Nil (and never
// appended to) unless a Grammar was built WithDebug.
type DebugEvent struct {
	Timestamp time.Time
	Event     string
	Offset    int
}

// ParseTelemetry holds coarse-grained timing and counters for one parse
// call. Nil unless a Grammar was built WithTelemetry.
type ParseTelemetry struct {
	ParseTime       time.Duration
	BacktrackCount  int
	MaxBacktrackDepth int
}

// ParsingContext is the single-consumer session state: position, plus the
// bookkeeping needed to report backtrack depth and optional diagnostics.
// A ParsingContext is created per parse call and discarded when runParser
// returns. At most one goroutine is ever runnable against it at a time.
type ParsingContext struct {
	lex      *lexer.Lexer
	position int

	backtrackDepth int
	epoch          int64
	closed         bool

	debugEvents []DebugEvent
	telemetry   *ParseTelemetry
}

func (c *ParsingContext) recordDebug(event string, offset int) {
	if c.debugEvents == nil {
		return
	}
	c.debugEvents = append(c.debugEvents, DebugEvent{Timestamp: time.Now(), Event: event, Offset: offset})
}

// DebugEvents returns the recorded trace, or nil if debug tracing was not
// enabled for this session.
func (c *ParsingContext) DebugEvents() []DebugEvent {
	return c.debugEvents
}

// Telemetry returns this session's accumulated telemetry, or nil if it
// was not enabled.
func (c *ParsingContext) Telemetry() *ParseTelemetry {
	return c.telemetry
}

// spawnParser is the one mechanism that installs a continuation and
// suspends the caller: it runs p on a fresh goroutine, with a deferred
// recover that turns a Fail-triggered panic into a taskResult, and blocks
// until that goroutine delivers its outcome. Exactly one goroutine is
// ever runnable at a time: the caller parks on the channel receive for
// the whole lifetime of the child. It is a free function because methods
// cannot carry their own type parameters in Go.
func spawnParser[R any](c *ParsingContext, s *ParsingScope, p Parser[R]) taskResult[R] {
	if c.telemetry != nil {
		// Every spawn counts here, including Run's (which never actually
		// backs out); BacktrackCount is an upper bound on real backtracking,
		// not an exact count of failed alternatives.
		c.telemetry.BacktrackCount++
		if c.backtrackDepth > c.telemetry.MaxBacktrackDepth {
			c.telemetry.MaxBacktrackDepth = c.backtrackDepth
		}
	}

	resultCh := make(chan taskResult[R], 1)
	child := s.child()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				if fs, ok := r.(failSignal); ok {
					resultCh <- taskResult[R]{err: fs.err}
					return
				}
				panic(r)
			}
		}()
		v := p.run(child)
		resultCh <- taskResult[R]{value: v}
	}()

	return <-resultCh
}

// wrapWithEOF builds the root task: run the user parser, then demand
// EofToken. Trailing unignored input therefore surfaces as
// MismatchedToken (residual input exists, whether or not any registered
// token recognizes it) or UnmatchedToken (nothing was found, because the
// lexer is genuinely at the end) at the offset where EOF was required.
func wrapWithEOF[R any](p Parser[R]) Parser[R] {
	return New("<root>", func(s *ParsingScope) R {
		v := Run(s, p)
		if _, ok := s.TryToken(lexer.EofToken); ok {
			return v
		}
		actual := s.ctx.lex.Diagnose(s.ctx.position)
		if actual.Token == lexer.EofToken {
			return Fail[R](s, UnmatchedToken(lexer.EofToken, actual.Offset))
		}
		return Fail[R](s, MismatchedToken(lexer.EofToken, &actual))
	})
}

// runParser drives the trampoline to completion: it installs the root
// task, spins it (here: spawns it and blocks for its single outcome), and
// returns the final ParseResult. See spawnParser for how each nested
// tryParse reuses the exact same mechanism.
func runParser[R any](ctx *ParsingContext, p Parser[R]) ParseResult[R] {
	root := &ParsingScope{ctx: ctx, epoch: ctx.epoch}

	resultCh := make(chan taskResult[R], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if fs, ok := r.(failSignal); ok {
					resultCh <- taskResult[R]{err: fs.err}
					return
				}
				panic(r)
			}
		}()
		v := p.run(root)
		resultCh <- taskResult[R]{value: v}
	}()

	tr := <-resultCh
	ctx.closed = true
	ctx.epoch++ // any scope captured from this session now fails its liveness check.

	if tr.err != nil {
		return Failure[R](tr.err)
	}
	return Success(tr.value)
}
