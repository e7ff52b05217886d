package domain

// Default capacities. A zero value in Limits means "unbounded".
const (
	DefaultMaxStates       = 100
	DefaultMaxTransitions  = 500
	DefaultMaxAlphabet     = 26
	DefaultMaxTraceRecords = 1024
	DefaultMaxNameLength   = 50
)

// Limits bounds the resources an automaton may use.
type Limits struct {
	MaxStates       int `json:"max_states" yaml:"max_states" mapstructure:"max_states" validate:"min=0"`
	MaxTransitions  int `json:"max_transitions" yaml:"max_transitions" mapstructure:"max_transitions" validate:"min=0"`
	MaxAlphabet     int `json:"max_alphabet" yaml:"max_alphabet" mapstructure:"max_alphabet" validate:"min=0"`
	MaxTraceRecords int `json:"max_trace_records" yaml:"max_trace_records" mapstructure:"max_trace_records" validate:"min=0"`
	MaxNameLength   int `json:"max_name_length" yaml:"max_name_length" mapstructure:"max_name_length" validate:"min=0"`
}

// DefaultLimits returns the standard capacities.
func DefaultLimits() Limits {
	return Limits{
		MaxStates:       DefaultMaxStates,
		MaxTransitions:  DefaultMaxTransitions,
		MaxAlphabet:     DefaultMaxAlphabet,
		MaxTraceRecords: DefaultMaxTraceRecords,
		MaxNameLength:   DefaultMaxNameLength,
	}
}

// Unbounded returns Limits with every capacity disabled.
func Unbounded() Limits {
	return Limits{}
}

// reached reports whether count has hit max. A non-positive max never is reached.
func reached(count, max int) bool {
	return max > 0 && count >= max
}

// StatesFull reports whether no more states may be registered.
func (l Limits) StatesFull(count int) bool { return reached(count, l.MaxStates) }

// TransitionsFull reports whether no more transitions may be registered.
func (l Limits) TransitionsFull(count int) bool { return reached(count, l.MaxTransitions) }

// AlphabetFull reports whether no more symbols may join the alphabet.
func (l Limits) AlphabetFull(count int) bool { return reached(count, l.MaxAlphabet) }

// TraceFull reports whether the trace cannot take another record.
func (l Limits) TraceFull(count int) bool { return reached(count, l.MaxTraceRecords) }
