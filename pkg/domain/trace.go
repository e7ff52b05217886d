package domain

import "fmt"

// TraceKind classifies a trace record.
type TraceKind string

const (
	StepStart         TraceKind = "start"          // Initial placement on the start state
	StepRead          TraceKind = "read"           // A symbol was consumed
	StepUnknownSymbol TraceKind = "unknown_symbol" // Symbol outside the alphabet (terminal)
	StepNoTransition  TraceKind = "no_transition"  // No transition for the symbol (terminal)
	StepVerdict       TraceKind = "verdict"        // Final ACCEPTED / REJECTED record
)

// Verdict messages closing a completed run.
const (
	VerdictAccepted = "ACCEPTED"
	VerdictRejected = "REJECTED"
)

// TraceRecord is one step of an execution.
// From/To are NoState when they do not apply to the record kind.
type TraceRecord struct {
	Kind    TraceKind  `json:"kind"`
	Symbol  rune       `json:"symbol,omitempty"`
	From    StateIndex `json:"from"`
	To      StateIndex `json:"to"`
	Message string     `json:"message"`
}

// Trace is the ordered log of one execution. It is never mutated after the run returns.
type Trace []TraceRecord

// Len returns the number of records.
func (t Trace) Len() int {
	return len(t)
}

// Lines returns the human-readable messages in order.
func (t Trace) Lines() []string {
	lines := make([]string, len(t))
	for i, r := range t {
		lines[i] = r.Message
	}
	return lines
}

// Last returns the final record, if any.
func (t Trace) Last() (TraceRecord, bool) {
	if len(t) == 0 {
		return TraceRecord{}, false
	}
	return t[len(t)-1], true
}

// StartRecord describes the initial placement.
func StartRecord(state State) TraceRecord {
	return TraceRecord{
		Kind:    StepStart,
		From:    NoState,
		To:      state.Index,
		Message: fmt.Sprintf("Starting at state: %s", state.Name),
	}
}

// ReadRecord describes a successful symbol read.
func ReadRecord(symbol rune, from, to State) TraceRecord {
	return TraceRecord{
		Kind:    StepRead,
		Symbol:  symbol,
		From:    from.Index,
		To:      to.Index,
		Message: fmt.Sprintf("Read '%c': %s -> %s", symbol, from.Name, to.Name),
	}
}

// UnknownSymbolRecord describes a symbol outside the alphabet.
func UnknownSymbolRecord(symbol rune, at State) TraceRecord {
	return TraceRecord{
		Kind:    StepUnknownSymbol,
		Symbol:  symbol,
		From:    at.Index,
		To:      NoState,
		Message: fmt.Sprintf("Error: '%c' not in alphabet", symbol),
	}
}

// NoTransitionRecord describes a missing transition from the current state.
func NoTransitionRecord(symbol rune, at State) TraceRecord {
	return TraceRecord{
		Kind:    StepNoTransition,
		Symbol:  symbol,
		From:    at.Index,
		To:      NoState,
		Message: fmt.Sprintf("No transition for '%c' from %s", symbol, at.Name),
	}
}

// VerdictRecord closes a run that consumed its whole input.
func VerdictRecord(at State, accepted bool) TraceRecord {
	msg := VerdictRejected
	if accepted {
		msg = VerdictAccepted
	}
	return TraceRecord{
		Kind:    StepVerdict,
		From:    at.Index,
		To:      NoState,
		Message: msg,
	}
}
