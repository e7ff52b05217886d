package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// HistoryStore defines the interface for persisting run records.
type HistoryStore interface {
	// Append stores a record under rec.Automaton.
	Append(ctx context.Context, rec domain.RunRecord) error

	// List returns up to limit records for the automaton, newest first.
	// A limit <= 0 returns every retained record. Unknown automata yield an empty list.
	List(ctx context.Context, automaton string, limit int) ([]domain.RunRecord, error)

	// Delete removes the history of the automaton.
	Delete(ctx context.Context, automaton string) error
}
