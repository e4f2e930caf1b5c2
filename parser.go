package parsus

// Parser is the unit of composition: an opaque carrier of a function from
// a ParsingScope to a value of type R that may suspend (by invoking
// another parser) and may fail. A Parser instance holds no observable
// state of its own and is safe to reuse across sessions and to share
// across concurrently running grammars; only the ParsingContext a session
// drives it with is single-consumer.
type Parser[R any] struct {
	name string
	run  func(s *ParsingScope) R
}

// New builds a Parser from its body function. name is used only for
// diagnostics (debug traces); pass "" if none is useful.
func New[R any](name string, run func(s *ParsingScope) R) Parser[R] {
	return Parser[R]{name: name, run: run}
}

// Name returns the parser's diagnostic name, or "" if it has none.
func (p Parser[R]) Name() string {
	return p.name
}

// taskResult is what a spawned parser task delivers back to the tryParse
// call that spawned it: either a value or a ParseError, never both.
type taskResult[R any] struct {
	value R
	err   *ParseError
}

// failSignal is the payload of the panic Fail raises. It is recovered
// exactly once, at the goroutine boundary installed by the nearest
// enclosing tryParse; see context.go.
type failSignal struct {
	err *ParseError
}
