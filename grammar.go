package parsus

import (
	"fmt"
	"sync"
	"time"

	"github.com/bliessens/parsus/lexer"
)

// TokenSet is a grammar's registered terminals: append-only until the
// grammar's first parse, frozen from then on. Registration order is the
// lexer's tiebreak order.
type TokenSet struct {
	mu       sync.Mutex
	tokens   []*lexer.Token
	byToken  map[*lexer.Token]bool
	frozen   bool
}

// NewTokenSet creates an empty, unfrozen token set.
func NewTokenSet() *TokenSet {
	return &TokenSet{byToken: make(map[*lexer.Token]bool)}
}

// Register adds a token to the set. It fails if the set is already frozen
// (i.e. some grammar sharing it has already parsed once) or if the exact
// same *Token was already registered.
func (ts *TokenSet) Register(t *lexer.Token) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.frozen {
		return fmt.Errorf("parsus: token set is frozen, cannot register %q", t.Name())
	}
	if ts.byToken[t] {
		return fmt.Errorf("parsus: token %q is already registered", t.Name())
	}
	ts.byToken[t] = true
	ts.tokens = append(ts.tokens, t)
	return nil
}

// freeze marks the set append-closed and returns a stable, ordered
// snapshot of its tokens. Safe to call repeatedly; later calls return the
// same snapshot.
func (ts *TokenSet) freeze() []*lexer.Token {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.frozen = true
	snap := make([]*lexer.Token, len(ts.tokens))
	copy(snap, ts.tokens)
	return snap
}

// GrammarOption configures a parsing session's optional instrumentation,
// in the functional-options style.
type GrammarOption func(*sessionConfig)

type sessionConfig struct {
	debug     bool
	telemetry bool
}

// WithDebug enables the DebugEvent trace for sessions built from this
// option.
func WithDebug() GrammarOption {
	return func(c *sessionConfig) { c.debug = true }
}

// WithTelemetry enables ParseTelemetry collection for sessions built from
// this option.
func WithTelemetry() GrammarOption {
	return func(c *sessionConfig) { c.telemetry = true }
}

func newContext(input string, tokens *TokenSet, opts []GrammarOption) *ParsingContext {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := &ParsingContext{
		lex: lexer.New(input, tokens.freeze()),
	}
	if cfg.debug {
		ctx.debugEvents = make([]DebugEvent, 0, 64)
	}
	if cfg.telemetry {
		ctx.telemetry = &ParseTelemetry{}
	}
	return ctx
}

// Parse constructs a fresh Lexer and ParsingContext over input and runs
// parser against it. Sessions never share mutable state: tokens may be
// shared read-only across concurrent calls once frozen, but each call
// gets its own Lexer and ParsingContext.
func Parse[R any](tokens *TokenSet, parser Parser[R], input string, opts ...GrammarOption) ParseResult[R] {
	ctx := newContext(input, tokens, opts)
	start := time.Now()
	result := runParser(ctx, wrapWithEOF(parser))
	if ctx.telemetry != nil {
		ctx.telemetry.ParseTime = time.Since(start)
	}
	return result
}

// Grammar binds a TokenSet to a designated root parser, so repeated calls
// to Parse don't need to keep re-specifying it.
type Grammar[R any] struct {
	Tokens *TokenSet
	Root   Parser[R]
	Opts   []GrammarOption
}

// NewGrammar binds tokens to root. Register every token root (transitively)
// depends on before the first call to Parse/ParseOrThrow/etc: registration
// is append-only until then.
func NewGrammar[R any](tokens *TokenSet, root Parser[R], opts ...GrammarOption) *Grammar[R] {
	return &Grammar[R]{Tokens: tokens, Root: root, Opts: opts}
}

// Parse runs the grammar's root parser against input.
func (g *Grammar[R]) Parse(input string) ParseResult[R] {
	return Parse(g.Tokens, g.Root, input, g.Opts...)
}

// ParseOrThrow runs the grammar and panics with the ParseError on failure.
func (g *Grammar[R]) ParseOrThrow(input string) R {
	return g.Parse(input).GetOrThrow()
}

// ParseOrNil runs the grammar and returns nil (instead of the ParseError)
// on failure.
func (g *Grammar[R]) ParseOrNil(input string) *R {
	res := g.Parse(input)
	if !res.IsSuccess() {
		return nil
	}
	v := res.Value()
	return &v
}

// ParseOrElse runs the grammar and returns def (instead of the ParseError)
// on failure.
func (g *Grammar[R]) ParseOrElse(input string, def R) R {
	res := g.Parse(input)
	if !res.IsSuccess() {
		return def
	}
	return res.Value()
}
