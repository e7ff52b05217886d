package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton,omitempty"`
}

// StepEvent is emitted for every trace record appended during a run.
type StepEvent struct {
	EventBase
	Position int         `json:"position"` // index of the symbol in the input, -1 for start/verdict
	Record   TraceRecord `json:"record"`
}

// RunEvent is emitted once a run halts.
type RunEvent struct {
	EventBase
	InputLength int           `json:"input_length"`
	Result      ProcessResult `json:"result"`
	Duration    time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *RunEvent)
}
