package domain

// StateIndex identifies a state by its registration order.
type StateIndex int

// NoState marks the absence of a state (e.g. no initial state set yet).
const NoState StateIndex = -1

// Valid reports whether the index could address a registered state.
// It does not check the upper bound; registries do that.
func (i StateIndex) Valid() bool {
	return i >= 0
}

// State is a named vertex of the automaton. Immutable once registered.
type State struct {
	Index     StateIndex `json:"index" yaml:"index"`
	Name      string     `json:"name" yaml:"name"`
	Accepting bool       `json:"accepting" yaml:"accepting"`
}
