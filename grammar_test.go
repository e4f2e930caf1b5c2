package parsus

import (
	"testing"

	"github.com/bliessens/parsus/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterGrammar builds S := "a": a grammar whose root parser demands
// exactly one literal "a" token, then EOF.
func letterGrammar() *Grammar[string] {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	_ = tokens.Register(a)
	return NewGrammar(tokens, literalParser(a))
}

func TestGrammarParsesExactLiteral(t *testing.T) {
	g := letterGrammar()
	res := g.Parse("a")
	require.True(t, res.IsSuccess())
	assert.Equal(t, "a", res.Value())
}

func TestGrammarFailsUnmatchedOnEmptyInput(t *testing.T) {
	g := letterGrammar()
	res := g.Parse("")
	require.False(t, res.IsSuccess())
	assert.Equal(t, KindUnmatchedToken, res.Error().Kind)
}

func TestGrammarFailsMismatchedOnTrailingInput(t *testing.T) {
	g := letterGrammar()
	res := g.Parse("ab")
	require.False(t, res.IsSuccess())
	assert.Equal(t, KindMismatchedToken, res.Error().Kind)
	assert.Equal(t, 1, res.Error().Offset)
}

func TestGrammarParseOrNilAndParseOrElse(t *testing.T) {
	g := letterGrammar()
	assert.Nil(t, g.ParseOrNil("z"))
	v := g.ParseOrNil("a")
	require.NotNil(t, v)
	assert.Equal(t, "a", *v)

	assert.Equal(t, "fallback", g.ParseOrElse("z", "fallback"))
	assert.Equal(t, "a", g.ParseOrElse("a", "fallback"))
}

func TestGrammarParseOrThrowPanicsWithParseError(t *testing.T) {
	g := letterGrammar()
	// Each Parse call builds its own *ParseError, so the panic value is
	// compared by content, not by pointer identity.
	var panicked interface{}
	func() {
		defer func() { panicked = recover() }()
		g.ParseOrThrow("")
	}()
	assert.Equal(t, g.Parse("").Error(), panicked)
}

func TestTokenSetRejectsDuplicateRegistration(t *testing.T) {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	require.NoError(t, tokens.Register(a))
	assert.Error(t, tokens.Register(a))
}

func TestTokenSetRejectsRegistrationAfterFreeze(t *testing.T) {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	require.NoError(t, tokens.Register(a))

	g := NewGrammar(tokens, literalParser(a))
	_ = g.Parse("a") // freezes tokens

	b := newTestLiteralToken("b", "b")
	assert.Error(t, tokens.Register(b))
}

func TestTokenSetDistinctTokensWithIdenticalTextStayDistinct(t *testing.T) {
	tokens := NewTokenSet()
	a1 := newTestLiteralToken("a1", "a")
	a2 := newTestLiteralToken("a2", "a")
	require.NoError(t, tokens.Register(a1))
	require.NoError(t, tokens.Register(a2))

	root := New("root", func(s *ParsingScope) *lexer.TokenMatch {
		return Run(s, TokenParser(a1))
	})
	res := Parse(tokens, root, "a")
	require.True(t, res.IsSuccess())
	assert.Same(t, a1, res.Value().Token, "the match names the token that was asked for, not another token with the same text")
}

func TestWithDebugRecordsTrace(t *testing.T) {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	require.NoError(t, tokens.Register(a))

	ctx := newContext("a", tokens, []GrammarOption{WithDebug()})
	_ = runParser(ctx, wrapWithEOF(literalParser(a)))
	assert.NotEmpty(t, ctx.DebugEvents())
}

func TestWithTelemetryRecordsBacktracks(t *testing.T) {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	require.NoError(t, tokens.Register(a))

	ctx := newContext("a", tokens, []GrammarOption{WithTelemetry()})
	_ = runParser(ctx, wrapWithEOF(literalParser(a)))
	require.NotNil(t, ctx.Telemetry())
	assert.Greater(t, ctx.Telemetry().BacktrackCount, 0)
}

func TestDebugAndTelemetryDisabledByDefault(t *testing.T) {
	tokens := NewTokenSet()
	a := newTestLiteralToken("a", "a")
	require.NoError(t, tokens.Register(a))

	ctx := newContext("a", tokens, nil)
	_ = runParser(ctx, wrapWithEOF(literalParser(a)))
	assert.Nil(t, ctx.DebugEvents())
	assert.Nil(t, ctx.Telemetry())
}
