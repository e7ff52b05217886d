package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager hosts named automata and serializes access to each one.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	history ports.HistoryStore

	mu    sync.Mutex            // Global lock for the locks map
	locks map[string]*lockEntry // Map of active locks

	regMu    sync.RWMutex
	automata map[string]ports.Automaton

	options []automata.Option // Applied to automata created through Create
	logger  *slog.Logger      // Logger for internal events (like history failures)
	now     func() time.Time
	newID   func() string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithAutomatonOptions sets the options used for every automaton created by Create
// (limits, hooks, logger). WithName is appended per automaton.
func WithAutomatonOptions(opts ...automata.Option) Option {
	return func(m *Manager) {
		m.options = append(m.options, opts...)
	}
}

// WithClock overrides the timestamp source for run records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Manager recording runs into the given history store.
func NewManager(history ports.HistoryStore, opts ...Option) *Manager {
	m := &Manager{
		history:  history,
		locks:    make(map[string]*lockEntry),
		automata: make(map[string]ports.Automaton),
		logger:   logging.NewNop(), // Default to no-op
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(name) after unlocking.
func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// WithLock executes a function while holding the lock for the name.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	return fn(ctx)
}

func (m *Manager) lookup(name string) (ports.Automaton, error) {
	m.regMu.RLock()
	defer m.regMu.RUnlock()

	a, ok := m.automata[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrAutomatonNotFound, name)
	}
	return a, nil
}

// Create registers a new empty automaton under name.
func (m *Manager) Create(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: automaton name must not be empty", domain.ErrInvalidName)
	}
	opts := append(append([]automata.Option(nil), m.options...), automata.WithName(name))
	return m.Register(ctx, name, automata.New(opts...))
}

// Register hosts an automaton built elsewhere (e.g. with pkg/dsl).
func (m *Manager) Register(ctx context.Context, name string, a ports.Automaton) error {
	m.regMu.Lock()
	defer m.regMu.Unlock()

	if _, exists := m.automata[name]; exists {
		return fmt.Errorf("%w: %q", domain.ErrAutomatonExists, name)
	}
	m.automata[name] = a
	m.logger.Info("automaton registered", "automaton", name)
	return nil
}

// Names lists hosted automata in lexical order.
func (m *Manager) Names() []string {
	m.regMu.RLock()
	defer m.regMu.RUnlock()

	names := make([]string, 0, len(m.automata))
	for name := range m.automata {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Do runs fn with exclusive access to the named automaton. The name is
// resolved under the lock, so a concurrent Delete is never raced.
func (m *Manager) Do(ctx context.Context, name string, fn func(context.Context, ports.Automaton) error) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		a, err := m.lookup(name)
		if err != nil {
			return err
		}
		return fn(ctx, a)
	})
}

// Describe returns the structure of the named automaton.
func (m *Manager) Describe(ctx context.Context, name string) (domain.Definition, error) {
	var def domain.Definition
	err := m.Do(ctx, name, func(_ context.Context, a ports.Automaton) error {
		def = a.Inspect()
		return nil
	})
	return def, err
}

// Run processes input on the named automaton and records the outcome in history.
// History failures are logged, not returned: the verdict stands regardless.
func (m *Manager) Run(ctx context.Context, name, input string) (*domain.ProcessResult, domain.RunRecord, error) {
	var (
		res *domain.ProcessResult
		rec domain.RunRecord
	)
	err := m.Do(ctx, name, func(ctx context.Context, a ports.Automaton) error {
		var err error
		res, err = a.ProcessString(ctx, input)
		if err != nil {
			return err
		}
		rec = domain.NewRunRecord(m.newID(), name, input, res, m.now())
		return nil
	})
	if err != nil {
		return nil, domain.RunRecord{}, err
	}

	if m.history != nil {
		if herr := m.history.Append(ctx, rec); herr != nil {
			m.logger.Warn("failed to record run", "automaton", name, "run_id", rec.ID, "err", herr)
		}
	}
	return res, rec, nil
}

// History returns up to limit past runs of the named automaton, newest first.
func (m *Manager) History(ctx context.Context, name string, limit int) ([]domain.RunRecord, error) {
	if _, err := m.lookup(name); err != nil {
		return nil, err
	}
	if m.history == nil {
		return []domain.RunRecord{}, nil
	}
	return m.history.List(ctx, name, limit)
}

// Delete stops hosting the named automaton and drops its history.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		m.regMu.Lock()
		_, exists := m.automata[name]
		delete(m.automata, name)
		m.regMu.Unlock()

		if !exists {
			return fmt.Errorf("%w: %q", domain.ErrAutomatonNotFound, name)
		}
		if m.history != nil {
			if err := m.history.Delete(ctx, name); err != nil {
				return fmt.Errorf("failed to delete history: %w", err)
			}
		}
		return nil
	})
}
