package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
)

// Engine is the automaton aggregate: registries, the initial state and the
// execution cursor.
//
// Engine is not safe for concurrent use. Hosts must serialize access to a given
// instance (see pkg/session).
type Engine struct {
	name   string
	limits domain.Limits
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	alphabet    *alphabet
	states      stateRegistry
	transitions transitionTable

	initial domain.StateIndex
	current domain.StateIndex
}

// NewEngine creates an empty automaton. Limits default to domain.DefaultLimits.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		limits:  domain.DefaultLimits(),
		logger:  logging.NewNop(),
		initial: domain.NoState,
		current: domain.NoState,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.alphabet = newAlphabet(e.limits.MaxAlphabet)
	if e.name != "" {
		e.logger = e.logger.With("automaton", e.name)
	}
	return e
}

// Name returns the label given with WithName.
func (e *Engine) Name() string {
	return e.name
}

// Limits returns the capacities in force.
func (e *Engine) Limits() domain.Limits {
	return e.limits
}

// AddState registers a new state and returns its index.
func (e *Engine) AddState(name string, accepting bool) (domain.StateIndex, error) {
	idx, err := e.states.add(name, accepting, e.limits)
	if err != nil {
		e.logger.Debug("state rejected", "name", name, "err", err)
		return domain.NoState, err
	}
	e.logger.Debug("state added", "index", int(idx), "name", name, "accepting", accepting)
	return idx, nil
}

// AddTransition registers from --symbol--> to and adds symbol to the alphabet.
// Index validation happens before the capacity check, and nothing is
// registered when either fails.
func (e *Engine) AddTransition(from, to domain.StateIndex, symbol rune) error {
	if !e.states.valid(from) {
		return fmt.Errorf("%w: from index %d (have %d states)", domain.ErrInvalidState, from, e.states.count())
	}
	if !e.states.valid(to) {
		return fmt.Errorf("%w: to index %d (have %d states)", domain.ErrInvalidState, to, e.states.count())
	}
	if e.limits.TransitionsFull(e.transitions.count()) {
		return fmt.Errorf("%w: maximum of %d transitions reached", domain.ErrCapacityExceeded, e.limits.MaxTransitions)
	}

	if prev, dup := e.transitions.find(from, symbol); dup {
		e.logger.Debug("transition shadowed by earlier registration",
			"from", e.states.get(from).Name,
			"symbol", string(symbol),
			"winner", prev,
		)
	}

	e.transitions.add(domain.Transition{From: from, To: to, Symbol: symbol})
	if !e.alphabet.register(symbol) {
		e.logger.Warn("alphabet full, symbol not registered",
			"symbol", string(symbol),
			"max_alphabet", e.limits.MaxAlphabet,
		)
	}
	return nil
}

// AlphabetContains reports whether symbol appeared on a registered transition
// (and fit in the alphabet).
func (e *Engine) AlphabetContains(symbol rune) bool {
	return e.alphabet.contains(symbol)
}

// FindTransition returns the index of the first transition registered for
// (from, symbol).
func (e *Engine) FindTransition(from domain.StateIndex, symbol rune) (int, bool) {
	return e.transitions.find(from, symbol)
}

// SetInitialState designates the start state and moves the cursor there.
func (e *Engine) SetInitialState(idx domain.StateIndex) error {
	if _, err := e.states.lookup(idx); err != nil {
		return err
	}
	e.initial = idx
	e.current = idx
	return nil
}

// Built reports whether an initial state has been set.
func (e *Engine) Built() bool {
	return e.initial.Valid()
}

// Reset rewinds the cursor to the initial state. Structure is untouched.
func (e *Engine) Reset() error {
	if !e.Built() {
		return domain.ErrUnbuilt
	}
	e.current = e.initial
	return nil
}

// Current returns the cursor position. ok is false while unbuilt.
func (e *Engine) Current() (domain.StateIndex, bool) {
	return e.current, e.current.Valid()
}

// State returns a registered state.
func (e *Engine) State(idx domain.StateIndex) (domain.State, error) {
	return e.states.lookup(idx)
}

// StateCount returns the number of registered states.
func (e *Engine) StateCount() int {
	return e.states.count()
}

// TransitionCount returns the number of registered transitions.
func (e *Engine) TransitionCount() int {
	return e.transitions.count()
}

// Inspect returns a read-only snapshot for visualization.
func (e *Engine) Inspect() domain.Definition {
	def := domain.Definition{
		Name:    e.name,
		States:  e.states.list(),
		Initial: e.initial,
		Limits:  e.limits,
	}
	for _, sym := range e.alphabet.list() {
		def.Alphabet = append(def.Alphabet, string(sym))
	}
	for _, tr := range e.transitions.list() {
		def.Transitions = append(def.Transitions, domain.TransitionView{
			From:     tr.From,
			To:       tr.To,
			FromName: e.states.get(tr.From).Name,
			ToName:   e.states.get(tr.To).Name,
			Symbol:   string(tr.Symbol),
		})
	}
	if e.Built() {
		def.InitialName = e.states.get(e.initial).Name
	}
	return def
}
