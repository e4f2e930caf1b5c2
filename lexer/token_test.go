package lexer

import (
	"regexp"
	"testing"
)

func TestLiteralTokenMatch(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		ignoreCase bool
		input      string
		offset     int
		wantLen    int
		wantOK     bool
	}{
		{name: "exact", text: "+", input: "1+2", offset: 1, wantLen: 1, wantOK: true},
		{name: "miss", text: "+", input: "1-2", offset: 1, wantLen: 0, wantOK: false},
		{name: "past end", text: "++", input: "1+", offset: 1, wantLen: 0, wantOK: false},
		{name: "case fold", text: "if", ignoreCase: true, input: "IF x", offset: 0, wantLen: 2, wantOK: true},
		{name: "case sensitive miss", text: "if", ignoreCase: false, input: "IF x", offset: 0, wantLen: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := literalMatcher{text: tt.text, ignoreCase: tt.ignoreCase}
			n, ok := m.match(tt.input, tt.offset)
			if ok != tt.wantOK || n != tt.wantLen {
				t.Errorf("match(%q, %d) = (%d, %v), want (%d, %v)", tt.input, tt.offset, n, ok, tt.wantLen, tt.wantOK)
			}
		})
	}
}

func TestRegexTokenMatchAnchored(t *testing.T) {
	re := regexp.MustCompile(`\d+`)
	m := regexMatcher{re: re}

	n, ok := m.match("12+34", 0)
	if !ok || n != 2 {
		t.Fatalf("expected match of length 2 at offset 0, got (%d, %v)", n, ok)
	}

	// Anchored at offset 1: '1' starts there, so "12" matches from offset 1.
	n, ok = m.match("a12", 1)
	if !ok || n != 2 {
		t.Fatalf("expected match of length 2 at offset 1, got (%d, %v)", n, ok)
	}

	// Regex would match later in the string but not at this offset.
	n, ok = m.match("ab12", 0)
	if ok {
		t.Fatalf("expected no match at offset 0, got (%d, %v)", n, ok)
	}
}

func TestRegexTokenRejectsEmptyUnlessAllowed(t *testing.T) {
	re := regexp.MustCompile(`\d*`)

	strict := regexMatcher{re: re}
	if _, ok := strict.match("abc", 0); ok {
		t.Fatal("expected empty match to be rejected by default")
	}

	lenient := regexMatcher{re: re, allowEmpty: true}
	n, ok := lenient.match("abc", 0)
	if !ok || n != 0 {
		t.Fatalf("expected allowed empty match, got (%d, %v)", n, ok)
	}
}

func TestTokenIdentityIsNotMatcherEquality(t *testing.T) {
	a := NewLiteralToken("plus", "+", false, false, "+")
	b := NewLiteralToken("plus", "+", false, false, "+")

	if a == b {
		t.Fatal("two separately constructed tokens with identical matchers must remain distinct")
	}
}

func TestEofTokenMatchesOnlyAtEnd(t *testing.T) {
	m := eofMatcher{}
	if _, ok := m.match("abc", 3); !ok {
		t.Fatal("expected EOF to match at len(input)")
	}
	if _, ok := m.match("abc", 2); ok {
		t.Fatal("expected EOF not to match before end of input")
	}
}

func TestTokenMatchTextSlicesSource(t *testing.T) {
	tok := NewLiteralToken("num", "42", false, false, "")
	m := NewTokenMatch(tok, 3, 2, "foo42bar")
	if got := m.Text(); got != "42" {
		t.Errorf("Text() = %q, want %q", got, "42")
	}
}

func TestTokenMatchInvariantViolationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds TokenMatch")
		}
	}()
	tok := NewLiteralToken("x", "x", false, false, "")
	NewTokenMatch(tok, 0, 10, "short")
}
