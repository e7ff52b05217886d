package automata_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCycle(t *testing.T, opts ...automata.Option) *automata.Automaton {
	t.Helper()
	a := automata.New(opts...)

	q0, err := a.AddState("q0", false)
	require.NoError(t, err)
	q1, err := a.AddState("q1", false)
	require.NoError(t, err)
	q2, err := a.AddState("q2", true)
	require.NoError(t, err)

	require.NoError(t, a.AddTransition(q0, q1, 'a'))
	require.NoError(t, a.AddTransition(q1, q2, 'b'))
	require.NoError(t, a.AddTransition(q2, q0, 'c'))
	require.NoError(t, a.SetInitialState(q0))
	return a
}

func TestAutomaton_Verdicts(t *testing.T) {
	a := buildCycle(t)
	ctx := context.Background()

	cases := map[string]bool{
		"":       false,
		"ab":     true,
		"abc":    false,
		"abcab":  true,
		"abcabc": false,
		"xyz":    false,
		"ba":     false,
	}
	for input, want := range cases {
		res, err := a.ProcessString(ctx, input)
		require.NoError(t, err, input)
		assert.Equal(t, want, res.Accepted, "input %q", input)
	}
}

func TestAutomaton_DefaultLimits(t *testing.T) {
	a := automata.New()
	assert.Equal(t, domain.DefaultLimits(), a.Limits())
}

func TestAutomaton_ZeroLimitsAreUnbounded(t *testing.T) {
	a := automata.New(automata.WithLimits(domain.Unbounded()))
	for i := 0; i < domain.DefaultMaxStates+10; i++ {
		_, err := a.AddState("s", false)
		require.NoError(t, err)
	}
	assert.Equal(t, domain.DefaultMaxStates+10, a.StateCount())
}

func TestAutomaton_CurrentFollowsRuns(t *testing.T) {
	a := automata.New()
	_, ok := a.Current()
	assert.False(t, ok, "cursor is undefined before SetInitialState")

	a = buildCycle(t)
	_, err := a.ProcessString(context.Background(), "ab")
	require.NoError(t, err)

	cur, ok := a.Current()
	require.True(t, ok)
	st, err := a.State(cur)
	require.NoError(t, err)
	assert.Equal(t, "q2", st.Name)

	require.NoError(t, a.Reset())
	cur, _ = a.Current()
	assert.Equal(t, domain.StateIndex(0), cur)
}

func TestAutomaton_UnbuiltRunFails(t *testing.T) {
	a := automata.New()
	_, err := a.AddState("q0", true)
	require.NoError(t, err)

	_, err = a.ProcessString(context.Background(), "a")
	assert.ErrorIs(t, err, domain.ErrUnbuilt)
}

func TestAutomaton_Hooks(t *testing.T) {
	var steps, halts int
	var lastHalt *domain.RunEvent
	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, _ *domain.StepEvent) { steps++ },
		OnHalt: func(_ context.Context, ev *domain.RunEvent) {
			halts++
			lastHalt = ev
		},
	}
	a := buildCycle(t, automata.WithLifecycleHooks(hooks), automata.WithName("cycle"))

	res, err := a.ProcessString(context.Background(), "ab")
	require.NoError(t, err)
	assert.Equal(t, res.Trace.Len(), steps)
	assert.Equal(t, 1, halts)
	require.NotNil(t, lastHalt)
	assert.Equal(t, "cycle", lastHalt.Automaton)
	assert.Equal(t, 2, lastHalt.InputLength)
}

func TestAutomaton_Inspect(t *testing.T) {
	a := buildCycle(t, automata.WithName("cycle"))
	def := a.Inspect()

	assert.Equal(t, "cycle", def.Name)
	assert.Equal(t, []string{"a", "b", "c"}, def.Alphabet)
	assert.Equal(t, "q0", def.InitialName)
	require.Len(t, def.Transitions, 3)
	assert.Equal(t, "q2", def.Transitions[2].FromName)
	assert.Equal(t, "q0", def.Transitions[2].ToName)
	assert.True(t, a.AlphabetContains('b'))
	assert.False(t, a.AlphabetContains('z'))

	idx, ok := a.FindTransition(1, 'b')
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 3, a.TransitionCount())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(automata.Version))
}
