package dsl

type edge struct {
	symbol rune
	target string
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name      string
	accepting bool
	initial   bool
	edges     []edge
	builder   *Builder
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// Initial marks the state as the start state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.initial = true
	return s
}

// On adds a transition on symbol to the named target. The target is declared
// if it does not exist yet.
func (s *StateBuilder) On(symbol rune, target string) *StateBuilder {
	s.builder.State(target)
	s.edges = append(s.edges, edge{symbol: symbol, target: target})
	return s
}
