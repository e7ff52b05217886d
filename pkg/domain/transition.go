package domain

// Transition moves the automaton from one state to another when Symbol is read.
type Transition struct {
	From   StateIndex `json:"from" yaml:"from"`
	To     StateIndex `json:"to" yaml:"to"`
	Symbol rune       `json:"symbol" yaml:"symbol"`
}
