package domain

// TransitionView is a transition resolved to state names, for display.
type TransitionView struct {
	From     StateIndex `json:"from"`
	To       StateIndex `json:"to"`
	FromName string     `json:"from_name"`
	ToName   string     `json:"to_name"`
	Symbol   string     `json:"symbol"`
}

// Definition is a read-only snapshot of an automaton's structure.
type Definition struct {
	Name        string           `json:"name,omitempty"`
	States      []State          `json:"states"`
	Alphabet    []string         `json:"alphabet"`
	Transitions []TransitionView `json:"transitions"`
	Initial     StateIndex       `json:"initial"`
	InitialName string           `json:"initial_name,omitempty"`
	Limits      Limits           `json:"limits"`
}

// Built reports whether an initial state has been designated.
func (d Definition) Built() bool {
	return d.Initial.Valid()
}

// AcceptingStates returns the accepting subset, in registration order.
func (d Definition) AcceptingStates() []State {
	var out []State
	for _, s := range d.States {
		if s.Accepting {
			out = append(out, s)
		}
	}
	return out
}
