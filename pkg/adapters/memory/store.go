package memory

import (
	"context"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data       map[string][]domain.RunRecord
	maxEntries int
	mu         sync.RWMutex
}

// Option configures a Store.
type Option func(*Store)

// WithMaxEntries caps the records kept per automaton; the oldest are dropped first.
// Zero keeps everything.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string][]domain.RunRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stores a copy of the record.
func (s *Store) Append(ctx context.Context, rec domain.RunRecord) error {
	rec.Trace = append([]string(nil), rec.Trace...)

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := append(s.data[rec.Automaton], rec)
	if s.maxEntries > 0 && len(recs) > s.maxEntries {
		recs = append([]domain.RunRecord(nil), recs[len(recs)-s.maxEntries:]...)
	}
	s.data[rec.Automaton] = recs
	return nil
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, automaton string, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.data[automaton]
	n := len(recs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.RunRecord, 0, n)
	for i := len(recs) - 1; i >= 0 && len(out) < n; i-- {
		rec := recs[i]
		rec.Trace = append([]string(nil), rec.Trace...)
		out = append(out, rec)
	}
	return out, nil
}

// Delete removes the history.
func (s *Store) Delete(ctx context.Context, automaton string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, automaton)
	return nil
}
