package parsus

import (
	"fmt"

	"github.com/bliessens/parsus/lexer"
)

// ErrorKind identifies which of the five error shapes a ParseError carries.
type ErrorKind int

const (
	// KindNoMatchingToken means the lexer found nothing at all at the
	// post-skip offset.
	KindNoMatchingToken ErrorKind = iota
	// KindMismatchedToken means a specific token was required but the
	// lexer produced a different match there.
	KindMismatchedToken
	// KindUnmatchedToken means a token parser was asked for and nothing
	// matched; unlike KindNoMatchingToken, an expected token identity was
	// specified.
	KindUnmatchedToken
	// KindNotEnoughRepetition means a repetition combinator failed its
	// lower bound.
	KindNotEnoughRepetition
	// KindNoViableAlternative means every branch of an alternation failed.
	KindNoViableAlternative
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoMatchingToken:
		return "NoMatchingToken"
	case KindMismatchedToken:
		return "MismatchedToken"
	case KindUnmatchedToken:
		return "UnmatchedToken"
	case KindNotEnoughRepetition:
		return "NotEnoughRepetition"
	case KindNoViableAlternative:
		return "NoViableAlternative"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the error taxonomy: every variant carries the offset at
// which it occurred, plus kind-specific payload fields.
type ParseError struct {
	Kind   ErrorKind
	Offset int

	Expected *lexer.Token      // MismatchedToken, UnmatchedToken
	Actual   *lexer.TokenMatch // MismatchedToken

	ExpectedCount int // NotEnoughRepetition
	ActualCount   int // NotEnoughRepetition

	Causes    []*ParseError // NoViableAlternative
	principal *ParseError   // NoViableAlternative: the furthest cause
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindNoMatchingToken:
		return fmt.Sprintf("no matching token at offset %d", e.Offset)
	case KindMismatchedToken:
		return fmt.Sprintf("expected %s at offset %d, got %s", e.Expected.Name(), e.Offset, e.Actual)
	case KindUnmatchedToken:
		return fmt.Sprintf("expected %s at offset %d", e.Expected.Name(), e.Offset)
	case KindNotEnoughRepetition:
		return fmt.Sprintf("expected at least %d repetitions at offset %d, got %d", e.ExpectedCount, e.Offset, e.ActualCount)
	case KindNoViableAlternative:
		if e.principal != nil {
			return fmt.Sprintf("no viable alternative at offset %d (furthest failure: %s)", e.Offset, e.principal.Error())
		}
		return fmt.Sprintf("no viable alternative at offset %d", e.Offset)
	default:
		return fmt.Sprintf("parse error (%s) at offset %d", e.Kind, e.Offset)
	}
}

// Principal returns the furthest-progress cause of a NoViableAlternative
// error, or nil for any other kind.
func (e *ParseError) Principal() *ParseError {
	return e.principal
}

// NoMatchingToken builds a KindNoMatchingToken error.
func NoMatchingToken(offset int) *ParseError {
	return &ParseError{Kind: KindNoMatchingToken, Offset: offset}
}

// MismatchedToken builds a KindMismatchedToken error: expected was asked
// for but actual is what the lexer found there instead.
func MismatchedToken(expected *lexer.Token, actual *lexer.TokenMatch) *ParseError {
	return &ParseError{Kind: KindMismatchedToken, Offset: actual.Offset, Expected: expected, Actual: actual}
}

// UnmatchedToken builds a KindUnmatchedToken error: expected was asked for
// and nothing matched at offset.
func UnmatchedToken(expected *lexer.Token, offset int) *ParseError {
	return &ParseError{Kind: KindUnmatchedToken, Offset: offset, Expected: expected}
}

// NotEnoughRepetition builds a KindNotEnoughRepetition error.
func NotEnoughRepetition(expectedCount, actualCount, offset int) *ParseError {
	return &ParseError{Kind: KindNotEnoughRepetition, Offset: offset, ExpectedCount: expectedCount, ActualCount: actualCount}
}

// NewNoViableAlternative aggregates the causes of an exhausted
// alternation. The principal cause is the one with the greatest offset;
// ties are broken in favor of the last one installed (i.e. the last
// element of causes, scanning forward and preferring later ties). The
// resulting error's own Offset is the principal's offset, so a chain of
// nested alternations reports the furthest point any branch actually
// reached, not merely the offset the outermost alternation started at;
// offset is used only as a fallback when causes is empty.
func NewNoViableAlternative(offset int, causes []*ParseError) *ParseError {
	err := &ParseError{Kind: KindNoViableAlternative, Offset: offset, Causes: causes}
	for _, c := range causes {
		if err.principal == nil || c.Offset >= err.principal.Offset {
			err.principal = c
		}
	}
	if err.principal != nil {
		err.Offset = err.principal.Offset
	}
	return err
}

// ParseResult is the sum type ParsedValue(value) | ParseError.
type ParseResult[R any] struct {
	value R
	err   *ParseError
}

// Success wraps a parsed value.
func Success[R any](value R) ParseResult[R] {
	return ParseResult[R]{value: value}
}

// Failure wraps a ParseError.
func Failure[R any](err *ParseError) ParseResult[R] {
	return ParseResult[R]{err: err}
}

// IsSuccess reports whether this result is a ParsedValue.
func (r ParseResult[R]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the parsed value. Only meaningful when IsSuccess is true;
// otherwise it returns R's zero value.
func (r ParseResult[R]) Value() R {
	return r.value
}

// Error returns the ParseError, or nil on success.
func (r ParseResult[R]) Error() *ParseError {
	return r.err
}

// GetOrThrow returns the value, panicking with the ParseError on failure.
func (r ParseResult[R]) GetOrThrow() R {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}
