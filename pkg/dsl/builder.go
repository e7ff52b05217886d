package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
)

// ErrMultipleInitial is returned by Build when more than one state was marked Initial.
var ErrMultipleInitial = errors.New("more than one initial state declared")

// Builder manages the automaton construction.
type Builder struct {
	opts   []automata.Option
	order  []string
	states map[string]*StateBuilder
}

// New creates a new automaton builder. opts are forwarded to automata.New.
func New(opts ...automata.Option) *Builder {
	return &Builder{
		opts:   opts,
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state by name.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		name:    name,
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build registers states in declaration order, then transitions in
// declaration order, then sets the initial state.
func (b *Builder) Build() (*automata.Automaton, error) {
	a := automata.New(b.opts...)

	indices := make(map[string]domain.StateIndex, len(b.order))
	initial := ""
	for _, name := range b.order {
		sb := b.states[name]
		idx, err := a.AddState(name, sb.accepting)
		if err != nil {
			return nil, fmt.Errorf("failed to add state %q: %w", name, err)
		}
		indices[name] = idx

		if sb.initial {
			if initial != "" {
				return nil, fmt.Errorf("%w: %q and %q", ErrMultipleInitial, initial, name)
			}
			initial = name
		}
	}

	for _, name := range b.order {
		for _, edge := range b.states[name].edges {
			if err := a.AddTransition(indices[name], indices[edge.target], edge.symbol); err != nil {
				return nil, fmt.Errorf("failed to add transition %s --%c--> %s: %w", name, edge.symbol, edge.target, err)
			}
		}
	}

	if initial == "" {
		return nil, fmt.Errorf("%w: no state marked Initial", domain.ErrUnbuilt)
	}
	if err := a.SetInitialState(indices[initial]); err != nil {
		return nil, err
	}
	return a, nil
}

// Sample declares the demo automaton: q0 -a-> q1 -b-> q2 -c-> q0, with q2 accepting.
func Sample(opts ...automata.Option) *Builder {
	b := New(opts...)
	b.State("q0").Initial().On('a', "q1")
	b.State("q1").On('b', "q2")
	b.State("q2").Accepting().On('c', "q0")
	return b
}
