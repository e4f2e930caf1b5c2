package lexer

// Lexer owns the input string and the grammar's frozen, ordered token set.
// It is stateless with respect to parsing position (the ParsingContext
// that drives it owns the position register), but it caches matches
// keyed on the post-ignored-skip offset, so repeated probes (e.g. a
// tryParse that rolls back and is re-attempted from the same position by
// a sibling alternative) are cheap.
type Lexer struct {
	input  string
	tokens []*Token // registration order; ties are broken in this order

	cache map[int]matchEntry
}

type matchEntry struct {
	match *TokenMatch // nil means "no match found" at this offset
}

// New builds a Lexer over input with tokens in their grammar registration
// order. tokens must not contain EofToken; EOF is handled implicitly.
func New(input string, tokens []*Token) *Lexer {
	return &Lexer{
		input:  input,
		tokens: tokens,
		cache:  make(map[int]matchEntry),
	}
}

// Len returns the length of the input string.
func (l *Lexer) Len() int {
	return len(l.input)
}

// SkipIgnored advances offset past any run of ignored-token matches,
// greedily: at each step it finds the longest ignored-token match at the
// current offset (ties broken by registration order) and advances past
// it, repeating until no ignored token matches. Returns the resulting
// offset.
func (l *Lexer) SkipIgnored(offset int) int {
	for {
		best := -1
		for _, t := range l.tokens {
			if !t.ignored {
				continue
			}
			if !quickAccepts(t, l.input, offset) {
				continue
			}
			if n, ok := t.matcher.match(l.input, offset); ok && n > best {
				best = n
			}
		}
		if best <= 0 {
			return offset
		}
		offset += best
	}
}

// FindMatch returns the one match the grammar should consume at offset:
// ignored tokens are skipped first, then each non-ignored token is tried
// in registration order and the first to match wins. Returns nil if
// nothing matches. Determinism: the same (input, offset) always yields
// the same result; results are memoized on the post-skip offset.
func (l *Lexer) FindMatch(offset int) *TokenMatch {
	post := l.SkipIgnored(offset)
	if entry, ok := l.cache[post]; ok {
		return entry.match
	}
	m := l.findNonIgnored(post)
	l.cache[post] = matchEntry{match: m}
	return m
}

func (l *Lexer) findNonIgnored(post int) *TokenMatch {
	for _, t := range l.tokens {
		if t.ignored {
			continue
		}
		if !quickAccepts(t, l.input, post) {
			continue
		}
		if n, ok := t.matcher.match(l.input, post); ok {
			m := NewTokenMatch(t, post, n, l.input)
			return &m
		}
	}
	if post == len(l.input) {
		m := NewTokenMatch(EofToken, post, 0, l.input)
		return &m
	}
	return nil
}

// MatchToken skips ignored tokens from offset, then checks whether the
// specific token t matches at the resulting offset, independent of
// whatever FindMatch's priority scan would have picked. Returns nil if t
// does not match there.
func (l *Lexer) MatchToken(t *Token, offset int) *TokenMatch {
	post := l.SkipIgnored(offset)
	if t == EofToken {
		if post == len(l.input) {
			m := NewTokenMatch(EofToken, post, 0, l.input)
			return &m
		}
		return nil
	}
	if !quickAccepts(t, l.input, post) {
		return nil
	}
	if n, ok := t.matcher.match(l.input, post); ok {
		m := NewTokenMatch(t, post, n, l.input)
		return &m
	}
	return nil
}

// Diagnose returns a best-effort description of what sits at offset, for
// error reporting: the registered priority match if one exists, the
// EofToken match if offset (after skipping ignored tokens) is at the end
// of input, or else a synthetic UnknownToken match spanning the
// unrecognized remainder. Unlike FindMatch, Diagnose never reports
// "nothing at all"; it exists so a MismatchedToken error can always name
// a concrete actual, even over input no registered token recognizes.
func (l *Lexer) Diagnose(offset int) TokenMatch {
	if m := l.FindMatch(offset); m != nil {
		return *m
	}
	post := l.SkipIgnored(offset)
	return NewTokenMatch(UnknownToken, post, len(l.input)-post, l.input)
}

// quickAccepts applies a token's firstChars rejection hint, if it has one.
func quickAccepts(t *Token, input string, offset int) bool {
	if t.firstChars == "" {
		return true
	}
	if offset >= len(input) {
		return false
	}
	for i := 0; i < len(t.firstChars); i++ {
		if input[offset] == t.firstChars[i] {
			return true
		}
	}
	return false
}
