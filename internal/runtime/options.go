package runtime

import (
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLimits sets the capacities enforced by the registries and the trace.
func WithLimits(limits domain.Limits) EngineOption {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithName labels the automaton in events and logs.
func WithName(name string) EngineOption {
	return func(e *Engine) {
		e.name = name
	}
}
