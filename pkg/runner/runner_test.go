package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *automata.Automaton {
	t.Helper()
	a, err := dsl.Sample().Build()
	require.NoError(t, err)
	return a
}

func run(t *testing.T, input string, opts ...runner.Option) string {
	t.Helper()
	var out bytes.Buffer
	r := runner.NewRunner(runner.NewTextHandler(strings.NewReader(input), &out), opts...)
	require.NoError(t, r.Run(context.Background(), sample(t)))
	return out.String()
}

func TestRunner_TestString(t *testing.T) {
	out := run(t, "1\nab\n4\n")

	assert.Contains(t, out, "Main Menu:")
	assert.Contains(t, out, "Enter string to test: ")
	assert.Contains(t, out, "--- Execution Trace ---\nStarting at state: q0\nRead 'a': q0 -> q1\nRead 'b': q1 -> q2\nACCEPTED\n")
	assert.Contains(t, out, "Exiting simulator. Goodbye!")
}

func TestRunner_EmptyString(t *testing.T) {
	out := run(t, "1\n\n4\n")
	assert.Contains(t, out, "Starting at state: q0\nREJECTED\n")
}

func TestRunner_Visualize(t *testing.T) {
	out := run(t, "2\nexit\n")
	assert.Contains(t, out, "=== FSM Visualization ===")
	assert.Contains(t, out, "  q2 --c--> q0")
}

func TestRunner_VisualizeWithRenderer(t *testing.T) {
	out := run(t, "2\n4\n", runner.WithRenderer(func(md string) (string, error) {
		return "RENDERED\n" + md, nil
	}))
	assert.Contains(t, out, "RENDERED")
	assert.Contains(t, out, "| q0 | `a` | q1 |")
	assert.NotContains(t, out, "=== FSM Visualization ===")
}

func TestRunner_VisualizeRendererFailureFallsBack(t *testing.T) {
	out := run(t, "2\n4\n", runner.WithRenderer(func(string) (string, error) {
		return "", errors.New("no terminal")
	}))
	assert.Contains(t, out, "=== FSM Visualization ===")
}

func TestRunner_Reset(t *testing.T) {
	out := run(t, "3\n4\n")
	assert.Contains(t, out, "✓ FSM reset to initial state.")
}

func TestRunner_InvalidOption(t *testing.T) {
	out := run(t, "9\n4\n")
	assert.Contains(t, out, "Invalid option. Please try again.")
}

func TestRunner_EOFExits(t *testing.T) {
	out := run(t, "1\nabc\n")
	assert.Contains(t, out, "REJECTED")
	assert.NotContains(t, out, "Goodbye")
}

func TestRunner_InputTooLongRetry(t *testing.T) {
	t.Setenv(runner.EnvMaxInputLength, "4")
	out := run(t, "1\nabcabc\nab\n4\n")
	assert.Contains(t, out, "Error: input exceeds maximum length")
	assert.Contains(t, out, "ACCEPTED")
}

func TestRunner_AutoTest(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(runner.NewTextHandler(strings.NewReader(""), &out))
	r.AutoTest(context.Background(), sample(t), runner.DefaultAutoTests)

	got := out.String()
	assert.Contains(t, got, "=== Automatic Testing ===")
	assert.Contains(t, got, "Input: \"abcabc\"")
	assert.Contains(t, got, "Input: \"xyz\"\n\n--- Execution Trace ---\nStarting at state: q0\nError: 'x' not in alphabet\n")
	assert.Equal(t, 2, strings.Count(got, "REJECTED\n")) // abc, abcabc
	assert.Equal(t, 1, strings.Count(got, "ACCEPTED\n"))
}

func TestRunner_RunFunc(t *testing.T) {
	var calls []string
	a := sample(t)
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.NewTextHandler(strings.NewReader("1\nab\n4\n"), &out),
		runner.WithRunFunc(func(ctx context.Context, input string) (*domain.ProcessResult, error) {
			calls = append(calls, input)
			return a.ProcessString(ctx, input)
		}),
	)
	require.NoError(t, r.Run(context.Background(), a))
	assert.Equal(t, []string{"ab"}, calls)
}

func TestRunner_RunErrorIsReported(t *testing.T) {
	out := run(t, "1\nab\n4\n", runner.WithRunFunc(func(context.Context, string) (*domain.ProcessResult, error) {
		return nil, domain.ErrTraceOverflow
	}))
	assert.Contains(t, out, "Error: trace")
}

func TestRunner_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	r := runner.NewRunner(runner.NewTextHandler(pr, &out))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Run(ctx, sample(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunner_GuardWrapsEveryAccess(t *testing.T) {
	a := sample(t)
	calls := 0
	out := run(t, "1\nab\n2\n3\n4\n", runner.WithGuard(func(ctx context.Context, fn func(context.Context, ports.Automaton) error) error {
		calls++
		return fn(ctx, a)
	}))

	assert.Equal(t, 3, calls) // test, visualize, reset
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "=== FSM Visualization ===")
	assert.Contains(t, out, "✓ FSM reset to initial state.")
}

func TestRunner_GuardErrorIsReported(t *testing.T) {
	out := run(t, "2\n3\n4\n", runner.WithGuard(func(context.Context, func(context.Context, ports.Automaton) error) error {
		return domain.ErrAutomatonNotFound
	}))
	assert.Equal(t, 2, strings.Count(out, "Error: automaton not found"))
	assert.NotContains(t, out, "✓ FSM reset")
}
