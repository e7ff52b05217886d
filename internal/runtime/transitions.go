package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
)

// transitionTable keeps transitions in registration order.
//
// Duplicates on (from, symbol) are allowed; lookups return the first one
// registered, so later duplicates are shadowed.
type transitionTable struct {
	transitions []domain.Transition
}

func (t *transitionTable) add(tr domain.Transition) int {
	t.transitions = append(t.transitions, tr)
	return len(t.transitions) - 1
}

// find scans in registration order and returns the first match.
func (t *transitionTable) find(from domain.StateIndex, sym rune) (int, bool) {
	for i, tr := range t.transitions {
		if tr.From == from && tr.Symbol == sym {
			return i, true
		}
	}
	return -1, false
}

func (t *transitionTable) get(i int) domain.Transition {
	return t.transitions[i]
}

func (t *transitionTable) list() []domain.Transition {
	out := make([]domain.Transition, len(t.transitions))
	copy(out, t.transitions)
	return out
}

func (t *transitionTable) count() int {
	return len(t.transitions)
}
