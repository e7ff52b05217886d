package runtime

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// stateRegistry holds states in registration order. Index == position.
type stateRegistry struct {
	states []domain.State
}

func (r *stateRegistry) add(name string, accepting bool, limits domain.Limits) (domain.StateIndex, error) {
	if name == "" {
		return domain.NoState, fmt.Errorf("%w: name is empty", domain.ErrInvalidName)
	}
	if limits.MaxNameLength > 0 && utf8.RuneCountInString(name) > limits.MaxNameLength {
		return domain.NoState, fmt.Errorf("%w: %q exceeds %d characters", domain.ErrInvalidName, name, limits.MaxNameLength)
	}
	if limits.StatesFull(len(r.states)) {
		return domain.NoState, fmt.Errorf("%w: maximum of %d states reached", domain.ErrCapacityExceeded, limits.MaxStates)
	}

	idx := domain.StateIndex(len(r.states))
	r.states = append(r.states, domain.State{
		Index:     idx,
		Name:      name,
		Accepting: accepting,
	})
	return idx, nil
}

func (r *stateRegistry) valid(idx domain.StateIndex) bool {
	return idx.Valid() && int(idx) < len(r.states)
}

// get assumes idx is valid.
func (r *stateRegistry) get(idx domain.StateIndex) domain.State {
	return r.states[idx]
}

func (r *stateRegistry) lookup(idx domain.StateIndex) (domain.State, error) {
	if !r.valid(idx) {
		return domain.State{}, fmt.Errorf("%w: index %d (have %d states)", domain.ErrInvalidState, idx, len(r.states))
	}
	return r.states[idx], nil
}

func (r *stateRegistry) list() []domain.State {
	out := make([]domain.State, len(r.states))
	copy(out, r.states)
	return out
}

func (r *stateRegistry) count() int {
	return len(r.states)
}
