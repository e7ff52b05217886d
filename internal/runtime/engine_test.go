package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSample builds q0 -a-> q1 -b-> q2 -c-> q0 with q2 accepting.
func newSample(t *testing.T, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	e := runtime.NewEngine(opts...)

	q0, err := e.AddState("q0", false)
	require.NoError(t, err)
	q1, err := e.AddState("q1", false)
	require.NoError(t, err)
	q2, err := e.AddState("q2", true)
	require.NoError(t, err)

	require.NoError(t, e.AddTransition(q0, q1, 'a'))
	require.NoError(t, e.AddTransition(q1, q2, 'b'))
	require.NoError(t, e.AddTransition(q2, q0, 'c'))
	require.NoError(t, e.SetInitialState(q0))
	return e
}

func TestEngine_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		accepted bool
		halt     domain.HaltReason
		trace    []string
	}{
		{
			name:     "Cycle ends on non-accepting q0",
			input:    "abc",
			accepted: false,
			halt:     domain.HaltCompleted,
			trace: []string{
				"Starting at state: q0",
				"Read 'a': q0 -> q1",
				"Read 'b': q1 -> q2",
				"Read 'c': q2 -> q0",
				"REJECTED",
			},
		},
		{
			name:     "Ends on accepting q2",
			input:    "ab",
			accepted: true,
			halt:     domain.HaltCompleted,
			trace: []string{
				"Starting at state: q0",
				"Read 'a': q0 -> q1",
				"Read 'b': q1 -> q2",
				"ACCEPTED",
			},
		},
		{
			name:     "Unknown symbol halts immediately",
			input:    "xyz",
			accepted: false,
			halt:     domain.HaltUnknownSymbol,
			trace: []string{
				"Starting at state: q0",
				"Error: 'x' not in alphabet",
			},
		},
		{
			name:     "Missing transition halts",
			input:    "ac",
			accepted: false,
			halt:     domain.HaltNoTransition,
			trace: []string{
				"Starting at state: q0",
				"Read 'a': q0 -> q1",
				"No transition for 'c' from q1",
			},
		},
		{
			name:     "Empty input uses initial flag",
			input:    "",
			accepted: false,
			halt:     domain.HaltCompleted,
			trace: []string{
				"Starting at state: q0",
				"REJECTED",
			},
		},
	}

	e := newSample(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.ProcessString(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.halt, res.Halt)
			assert.Equal(t, tt.trace, res.Trace.Lines())
		})
	}
}

func TestEngine_TraceLength(t *testing.T) {
	e := newSample(t)
	ctx := context.Background()

	for _, input := range []string{"a", "ab", "abc", "abcab", "abcabcabc"} {
		res, err := e.ProcessString(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, len(input)+2, res.Trace.Len(), "completed run %q", input)
		assert.Equal(t, len(input), res.Consumed)
	}

	// Rejection at 0-based index i yields i+2 records.
	for input, i := range map[string]int{"x": 0, "ax": 1, "abz": 2, "abcb": 3} {
		res, err := e.ProcessString(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, i+2, res.Trace.Len(), "rejected run %q", input)
		assert.False(t, res.Accepted)
	}
}

func TestEngine_Determinism(t *testing.T) {
	e := newSample(t)
	ctx := context.Background()

	first, err := e.ProcessString(ctx, "abcab")
	require.NoError(t, err)

	// An intervening run that leaves the cursor elsewhere must not matter.
	_, err = e.ProcessString(ctx, "a")
	require.NoError(t, err)

	second, err := e.ProcessString(ctx, "abcab")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngine_EmptyInputAccepting(t *testing.T) {
	e := runtime.NewEngine()
	only, err := e.AddState("only", true)
	require.NoError(t, err)
	require.NoError(t, e.SetInitialState(only))

	res, err := e.ProcessString(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, []string{"Starting at state: only", "ACCEPTED"}, res.Trace.Lines())
}

func TestEngine_Reset(t *testing.T) {
	e := newSample(t)

	_, err := e.ProcessString(context.Background(), "ab")
	require.NoError(t, err)
	cur, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, domain.StateIndex(2), cur, "cursor stays where the run ended")

	require.NoError(t, e.Reset())
	once, _ := e.Current()
	require.NoError(t, e.Reset())
	twice, _ := e.Current()

	assert.Equal(t, domain.StateIndex(0), once)
	assert.Equal(t, once, twice)
}

func TestEngine_Unbuilt(t *testing.T) {
	e := runtime.NewEngine()

	assert.ErrorIs(t, e.Reset(), domain.ErrUnbuilt)
	_, err := e.ProcessString(context.Background(), "a")
	assert.ErrorIs(t, err, domain.ErrUnbuilt)

	_, ok := e.Current()
	assert.False(t, ok)
	assert.False(t, e.Inspect().Built())
}

func TestEngine_InvalidState(t *testing.T) {
	e := runtime.NewEngine()
	q0, err := e.AddState("q0", false)
	require.NoError(t, err)

	assert.ErrorIs(t, e.SetInitialState(5), domain.ErrInvalidState)
	assert.ErrorIs(t, e.SetInitialState(domain.NoState), domain.ErrInvalidState)
	assert.ErrorIs(t, e.AddTransition(q0, 1, 'a'), domain.ErrInvalidState)
	assert.ErrorIs(t, e.AddTransition(-3, q0, 'a'), domain.ErrInvalidState)

	assert.Equal(t, 0, e.TransitionCount())
	assert.False(t, e.AlphabetContains('a'), "failed registration must not touch the alphabet")
}

func TestEngine_StateCapacity(t *testing.T) {
	limits := domain.DefaultLimits()
	limits.MaxStates = 2
	e := runtime.NewEngine(runtime.WithLimits(limits))

	_, err := e.AddState("a", false)
	require.NoError(t, err)
	_, err = e.AddState("b", false)
	require.NoError(t, err)

	idx, err := e.AddState("c", false)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, domain.NoState, idx)
	assert.Equal(t, 2, e.StateCount())
}

func TestEngine_TransitionCapacity(t *testing.T) {
	limits := domain.DefaultLimits()
	limits.MaxTransitions = 1
	e := runtime.NewEngine(runtime.WithLimits(limits))
	q0, _ := e.AddState("q0", false)

	require.NoError(t, e.AddTransition(q0, q0, 'a'))
	err := e.AddTransition(q0, q0, 'b')
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 1, e.TransitionCount())
	assert.False(t, e.AlphabetContains('b'))
}

func TestEngine_NameValidation(t *testing.T) {
	limits := domain.DefaultLimits()
	limits.MaxNameLength = 3
	e := runtime.NewEngine(runtime.WithLimits(limits))

	_, err := e.AddState("", false)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = e.AddState("long", false)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = e.AddState("ñño", false)
	assert.NoError(t, err, "length is counted in characters")
	assert.Equal(t, 1, e.StateCount())
}

func TestEngine_DuplicateNamesAllowed(t *testing.T) {
	e := runtime.NewEngine()
	a, err := e.AddState("same", false)
	require.NoError(t, err)
	b, err := e.AddState("same", true)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEngine_FirstMatchWins(t *testing.T) {
	e := runtime.NewEngine()
	q0, _ := e.AddState("q0", false)
	first, _ := e.AddState("first", true)
	second, _ := e.AddState("second", false)

	require.NoError(t, e.AddTransition(q0, first, 'a'))
	require.NoError(t, e.AddTransition(q0, second, 'a'))
	require.NoError(t, e.SetInitialState(q0))

	idx, ok := e.FindTransition(q0, 'a')
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	res, err := e.ProcessString(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, first, res.FinalState)
	assert.Len(t, e.Inspect().Transitions, 2, "shadowed transitions are still listed")
}

func TestEngine_FindTransitionMissing(t *testing.T) {
	e := newSample(t)
	_, ok := e.FindTransition(0, 'b')
	assert.False(t, ok)
}

func TestEngine_TraceOverflow(t *testing.T) {
	limits := domain.DefaultLimits()
	limits.MaxTraceRecords = 3
	e := newSample(t, runtime.WithLimits(limits))
	ctx := context.Background()

	res, err := e.ProcessString(ctx, "a")
	require.NoError(t, err, "start + read + verdict fits exactly")
	assert.Equal(t, 3, res.Trace.Len())

	_, err = e.ProcessString(ctx, "ab")
	assert.ErrorIs(t, err, domain.ErrTraceOverflow)

	res, err = e.ProcessString(ctx, "ax")
	require.NoError(t, err, "early rejection stays within the bound")
	assert.Equal(t, domain.HaltUnknownSymbol, res.Halt)
}

func TestEngine_UnboundedTrace(t *testing.T) {
	e := newSample(t, runtime.WithLimits(domain.Unbounded()))
	input := ""
	for i := 0; i < 2000; i++ {
		input += "abc"
	}
	res, err := e.ProcessString(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, len(input)+2, res.Trace.Len())
}

func TestEngine_Hooks(t *testing.T) {
	var steps []domain.TraceKind
	var halts []*domain.RunEvent

	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			steps = append(steps, ev.Record.Kind)
		},
		OnHalt: func(_ context.Context, ev *domain.RunEvent) {
			halts = append(halts, ev)
		},
	}
	e := newSample(t, runtime.WithLifecycleHooks(hooks), runtime.WithName("demo"))

	_, err := e.ProcessString(context.Background(), "ac")
	require.NoError(t, err)

	assert.Equal(t, []domain.TraceKind{domain.StepStart, domain.StepRead, domain.StepNoTransition}, steps)
	require.Len(t, halts, 1)
	assert.Equal(t, "demo", halts[0].Automaton)
	assert.Equal(t, 2, halts[0].InputLength)
	assert.Equal(t, domain.HaltNoTransition, halts[0].Result.Halt)
}

func TestEngine_HaltHookCannotAlterResult(t *testing.T) {
	hooks := domain.LifecycleHooks{
		OnHalt: func(_ context.Context, ev *domain.RunEvent) {
			ev.Result.Trace[0].Message = "rewritten"
			ev.Result.Trace = append(ev.Result.Trace, domain.TraceRecord{Message: "extra"})
			ev.Result.Accepted = !ev.Result.Accepted
		},
	}
	e := newSample(t, runtime.WithLifecycleHooks(hooks))

	res, err := e.ProcessString(context.Background(), "ab")
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	require.Equal(t, 4, res.Trace.Len())
	assert.Equal(t, "Starting at state: q0", res.Trace[0].Message)
	assert.NotContains(t, res.Trace.Lines(), "extra")
}

func TestEngine_Inspect(t *testing.T) {
	e := newSample(t, runtime.WithName("sample"))
	def := e.Inspect()

	assert.Equal(t, "sample", def.Name)
	assert.Equal(t, "q0", def.InitialName)
	assert.Equal(t, []string{"a", "b", "c"}, def.Alphabet)
	require.Len(t, def.Transitions, 3)
	assert.Equal(t, domain.TransitionView{From: 1, To: 2, FromName: "q1", ToName: "q2", Symbol: "b"}, def.Transitions[1])
	require.Len(t, def.AcceptingStates(), 1)
	assert.Equal(t, "q2", def.AcceptingStates()[0].Name)
}
