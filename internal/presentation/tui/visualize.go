package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Visualize prints the plain-text structure listing: states, accepting states,
// initial state, alphabet and transitions.
func Visualize(w io.Writer, def domain.Definition) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== FSM Visualization ===")

	names := make([]string, 0, len(def.States))
	for _, st := range def.States {
		names = append(names, st.Name)
	}
	fmt.Fprintf(w, "States: %s\n", strings.Join(names, ", "))

	accepting := make([]string, 0)
	for _, st := range def.AcceptingStates() {
		accepting = append(accepting, st.Name)
	}
	fmt.Fprintf(w, "Accept States: %s\n", strings.Join(accepting, " "))

	initial := "(none)"
	if def.Built() {
		initial = def.InitialName
	}
	fmt.Fprintf(w, "Initial State: %s\n", initial)
	fmt.Fprintf(w, "Alphabet: {%s}\n", strings.Join(def.Alphabet, ", "))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Transitions:")
	for _, tr := range def.Transitions {
		fmt.Fprintf(w, "  %s --%s--> %s\n", tr.FromName, tr.Symbol, tr.ToName)
	}
	fmt.Fprintln(w, "========================")
	fmt.Fprintln(w)
}
