package domain

import "time"

// HaltReason explains why a run stopped.
type HaltReason string

const (
	HaltCompleted     HaltReason = "completed"      // Whole input consumed; verdict from accepting flag
	HaltUnknownSymbol HaltReason = "unknown_symbol" // Symbol outside the alphabet
	HaltNoTransition  HaltReason = "no_transition"  // No transition from the current state
)

// ProcessResult is the outcome of one execution. Produced fresh per call; never shared.
type ProcessResult struct {
	Accepted bool       `json:"accepted"`
	Trace    Trace      `json:"trace"`
	Halt     HaltReason `json:"halt"`

	// FinalState is the cursor position when the run stopped.
	FinalState StateIndex `json:"final_state"`

	// Consumed counts the symbols successfully read.
	Consumed int `json:"consumed"`
}

// RunRecord is a history entry for one execution, as kept by a HistoryStore.
type RunRecord struct {
	ID        string     `json:"id"`
	Automaton string     `json:"automaton"`
	Input     string     `json:"input"`
	Accepted  bool       `json:"accepted"`
	Halt      HaltReason `json:"halt"`
	Trace     []string   `json:"trace"`
	At        time.Time  `json:"at"`
}

// NewRunRecord flattens a result into a history entry.
func NewRunRecord(id, automaton, input string, res *ProcessResult, at time.Time) RunRecord {
	return RunRecord{
		ID:        id,
		Automaton: automaton,
		Input:     input,
		Accepted:  res.Accepted,
		Halt:      res.Halt,
		Trace:     res.Trace.Lines(),
		At:        at,
	}
}
