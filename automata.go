package automata

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
)

// Automaton is the high-level entry point for the automata library.
// It wraps the internal runtime and provides a simplified API for consumers.
//
// An Automaton is not safe for concurrent use; see pkg/session for a host
// that serializes access.
type Automaton struct {
	runtime *runtime.Engine
	limits  domain.Limits
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

// Option defines a functional option for configuring the Automaton.
type Option func(*Automaton)

// WithLimits overrides the default capacities.
func WithLimits(limits domain.Limits) Option {
	return func(a *Automaton) {
		a.limits = limits
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Automaton) {
		a.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automaton) {
		a.logger = logger
	}
}

// WithName labels the automaton in logs, events and inspection output.
func WithName(name string) Option {
	return func(a *Automaton) {
		a.Name = name
	}
}

// New creates an empty automaton. Capacities are fixed here for its lifetime.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		limits: domain.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(a)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	a.runtime = runtime.NewEngine(
		runtime.WithLimits(a.limits),
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(a.hooks),
		runtime.WithName(a.Name),
	)
	return a
}

// AddState registers a state and returns its index.
// Fails with domain.ErrCapacityExceeded or domain.ErrInvalidName.
func (a *Automaton) AddState(name string, accepting bool) (domain.StateIndex, error) {
	return a.runtime.AddState(name, accepting)
}

// AddTransition registers from --symbol--> to. The symbol joins the alphabet.
// Fails with domain.ErrInvalidState or domain.ErrCapacityExceeded.
func (a *Automaton) AddTransition(from, to domain.StateIndex, symbol rune) error {
	return a.runtime.AddTransition(from, to, symbol)
}

// SetInitialState designates the start state.
func (a *Automaton) SetInitialState(state domain.StateIndex) error {
	return a.runtime.SetInitialState(state)
}

// Reset rewinds the cursor to the initial state.
func (a *Automaton) Reset() error {
	return a.runtime.Reset()
}

// ProcessString runs the automaton over input and returns the verdict and trace.
// Rejections are results, not errors.
func (a *Automaton) ProcessString(ctx context.Context, input string) (*domain.ProcessResult, error) {
	res, err := a.runtime.ProcessString(ctx, input)
	if err != nil {
		a.logger.Warn("process string failed", "err", err)
		return nil, err
	}
	return res, nil
}

// AlphabetContains reports whether symbol may be attempted during execution.
func (a *Automaton) AlphabetContains(symbol rune) bool {
	return a.runtime.AlphabetContains(symbol)
}

// FindTransition returns the index of the transition taken from state on symbol.
func (a *Automaton) FindTransition(state domain.StateIndex, symbol rune) (int, bool) {
	return a.runtime.FindTransition(state, symbol)
}

// Current returns the cursor. ok is false until an initial state is set.
func (a *Automaton) Current() (domain.StateIndex, bool) {
	return a.runtime.Current()
}

// State returns a registered state by index.
func (a *Automaton) State(idx domain.StateIndex) (domain.State, error) {
	return a.runtime.State(idx)
}

// StateCount returns the number of registered states.
func (a *Automaton) StateCount() int {
	return a.runtime.StateCount()
}

// TransitionCount returns the number of registered transitions.
func (a *Automaton) TransitionCount() int {
	return a.runtime.TransitionCount()
}

// Inspect returns the structure for visualization or introspection tools.
func (a *Automaton) Inspect() domain.Definition {
	return a.runtime.Inspect()
}

// Limits returns the capacities the automaton was created with.
func (a *Automaton) Limits() domain.Limits {
	return a.limits
}
