package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// ValidateDefinition checks an automaton for structural problems: a missing
// initial state, states unreachable from it, transitions shadowed by an
// earlier one on the same symbol, and no reachable accepting state.
func ValidateDefinition(def domain.Definition) error {
	if !def.Built() {
		return fmt.Errorf("found 1 errors:\n- No initial state designated")
	}

	var errors []string

	// 1. Shadowed transitions (first registered wins)
	type key struct {
		from   domain.StateIndex
		symbol string
	}
	winners := make(map[key]domain.TransitionView)
	adjacency := make(map[domain.StateIndex][]domain.StateIndex)
	for _, tr := range def.Transitions {
		k := key{tr.From, tr.Symbol}
		if first, ok := winners[k]; ok {
			errors = append(errors, fmt.Sprintf("Shadowed transition: %s --%s--> %s (%s --%s--> %s wins)",
				tr.FromName, tr.Symbol, tr.ToName, first.FromName, first.Symbol, first.ToName))
			continue
		}
		winners[k] = tr
		adjacency[tr.From] = append(adjacency[tr.From], tr.To)
	}

	// 2. Crawler
	visited := make(map[domain.StateIndex]bool)
	queue := []domain.StateIndex{def.Initial}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range adjacency[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	acceptingReachable := false
	for _, st := range def.States {
		if !visited[st.Index] {
			errors = append(errors, fmt.Sprintf("Unreachable state: '%s'", st.Name))
			continue
		}
		if st.Accepting {
			acceptingReachable = true
		}
	}
	if !acceptingReachable {
		errors = append(errors, fmt.Sprintf("No accepting state reachable from '%s'", def.InitialName))
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
