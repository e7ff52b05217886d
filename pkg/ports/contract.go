package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRecord(automaton string, n int) domain.RunRecord {
	return domain.RunRecord{
		ID:        fmt.Sprintf("%s-run-%d", automaton, n),
		Automaton: automaton,
		Input:     fmt.Sprintf("input-%d", n),
		Accepted:  n%2 == 0,
		Halt:      domain.HaltCompleted,
		Trace:     []string{"Starting at state: q0", domain.VerdictRejected},
		At:        time.Date(2026, 1, 1, 0, 0, n, 0, time.UTC),
	}
}

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore implementation
// adheres to the defined interface contract.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	automaton := "contract-" + time.Now().Format("20060102150405")

	t.Run("Append and List newest first", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			require.NoError(t, store.Append(ctx, contractRecord(automaton, i)))
		}

		recs, err := store.List(ctx, automaton, 0)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, automaton+"-run-3", recs[0].ID)
		assert.Equal(t, automaton+"-run-1", recs[2].ID)
		assert.Equal(t, "input-3", recs[0].Input)
		assert.Equal(t, []string{"Starting at state: q0", domain.VerdictRejected}, recs[0].Trace)
		assert.True(t, recs[0].At.Equal(contractRecord(automaton, 3).At))
	})

	t.Run("List honours limit", func(t *testing.T) {
		recs, err := store.List(ctx, automaton, 2)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, automaton+"-run-3", recs[0].ID)
	})

	t.Run("List unknown automaton", func(t *testing.T) {
		recs, err := store.List(ctx, "missing-"+automaton, 0)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Histories are isolated", func(t *testing.T) {
		other := automaton + "-other"
		require.NoError(t, store.Append(ctx, contractRecord(other, 1)))
		defer func() { _ = store.Delete(ctx, other) }()

		recs, err := store.List(ctx, other, 0)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, other, recs[0].Automaton)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, automaton))

		recs, err := store.List(ctx, automaton, 0)
		require.NoError(t, err)
		assert.Empty(t, recs, "List after Delete should be empty")
	})
}
