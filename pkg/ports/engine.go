package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Automaton defines the operations adapters (HTTP, MCP, runner) need from an automaton.
// Implementations are not required to be safe for concurrent use; callers
// serialize access (see pkg/session).
type Automaton interface {
	// AddState registers a state and returns its stable index.
	AddState(name string, accepting bool) (domain.StateIndex, error)

	// AddTransition registers from --symbol--> to.
	AddTransition(from, to domain.StateIndex, symbol rune) error

	// SetInitialState designates the start state.
	SetInitialState(state domain.StateIndex) error

	// Reset rewinds the cursor to the initial state.
	Reset() error

	// ProcessString runs the automaton over input from the initial state.
	ProcessString(ctx context.Context, input string) (*domain.ProcessResult, error)

	// Current returns the cursor position; ok is false before an initial state is set.
	Current() (domain.StateIndex, bool)

	// Inspect returns the current structure for introspection.
	Inspect() domain.Definition
}
