package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultAutoTests are the inputs run before the menu when none are configured.
var DefaultAutoTests = []string{"abc", "ab", "abcabc", "xyz"}

const menu = `
============================================================
Main Menu:
1. Test FSM with string
2. Visualize FSM
3. Reset FSM
4. Exit`

// Runner drives an automaton from a text menu.
type Runner struct {
	handler  *TextHandler
	logger   *slog.Logger
	styled   bool
	renderer func(string) (string, error)
	onRun    func(ctx context.Context, input string) (*domain.ProcessResult, error)
	guard    func(ctx context.Context, fn func(context.Context, ports.Automaton) error) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStyled colors traces and verdicts.
func WithStyled(styled bool) Option {
	return func(r *Runner) {
		r.styled = styled
	}
}

// WithRenderer renders the visualize option as markdown through render
// instead of the plain listing.
func WithRenderer(render func(string) (string, error)) Option {
	return func(r *Runner) {
		r.renderer = render
	}
}

// WithRunFunc replaces direct ProcessString calls, e.g. to go through a
// session.Manager and record history.
func WithRunFunc(fn func(ctx context.Context, input string) (*domain.ProcessResult, error)) Option {
	return func(r *Runner) {
		r.onRun = fn
	}
}

// WithGuard routes every access to the automaton (runs, visualize, reset)
// through guard, e.g. session.Manager.Do, so a shared instance stays serialized.
// guard passes the automaton to operate on to fn.
func WithGuard(guard func(ctx context.Context, fn func(context.Context, ports.Automaton) error) error) Option {
	return func(r *Runner) {
		r.guard = guard
	}
}

// NewRunner creates a runner over the given handler.
func NewRunner(h *TextHandler, opts ...Option) *Runner {
	r := &Runner{
		handler: h,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) process(ctx context.Context, a ports.Automaton, input string) {
	var (
		res *domain.ProcessResult
		err error
	)
	if r.onRun != nil {
		res, err = r.onRun(ctx, input)
	} else {
		err = r.with(ctx, a, func(ctx context.Context, a ports.Automaton) error {
			res, err = a.ProcessString(ctx, input)
			return err
		})
	}
	if err != nil {
		r.logger.Warn("run failed", "input", input, "err", err)
		r.handler.Println("Error:", err)
		return
	}
	tui.PrintTrace(r.handler.Writer, res, r.styled)
}

// AutoTest runs each input and prints its trace.
func (r *Runner) AutoTest(ctx context.Context, a ports.Automaton, inputs []string) {
	r.handler.Println("=== Automatic Testing ===")
	for _, in := range inputs {
		r.handler.Println()
		fmt.Fprintf(r.handler.Writer, "Input: %q\n", in)
		r.process(ctx, a, in)
	}
}

// with runs fn on a, through the guard when one is set.
func (r *Runner) with(ctx context.Context, a ports.Automaton, fn func(context.Context, ports.Automaton) error) error {
	if r.guard != nil {
		return r.guard(ctx, fn)
	}
	return fn(ctx, a)
}

// Visualize prints the automaton structure.
func (r *Runner) Visualize(ctx context.Context, a ports.Automaton) {
	var def domain.Definition
	err := r.with(ctx, a, func(_ context.Context, a ports.Automaton) error {
		def = a.Inspect()
		return nil
	})
	if err != nil {
		r.handler.Println("Error:", err)
		return
	}
	if r.renderer != nil {
		out, err := r.renderer(tui.DefinitionMarkdown(def))
		if err == nil {
			r.handler.Println(strings.TrimRight(out, "\n"))
			return
		}
		r.logger.Debug("markdown rendering failed, falling back to plain", "err", err)
	}
	tui.Visualize(r.handler.Writer, def)
}

// Run loops over the menu until the user exits, input ends or ctx is cancelled.
// End of input is a normal exit.
func (r *Runner) Run(ctx context.Context, a ports.Automaton) error {
	for {
		r.handler.Println(menu)
		choice, err := r.handler.Prompt(ctx, "Select option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.handler.Println()
				return nil
			}
			return err
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "test":
			input, err := r.handler.Prompt(ctx, "\nEnter string to test: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
			r.process(ctx, a, input)

		case "2", "visualize":
			r.Visualize(ctx, a)

		case "3", "reset":
			err := r.with(ctx, a, func(_ context.Context, a ports.Automaton) error {
				return a.Reset()
			})
			if err != nil {
				r.handler.Println("Error:", err)
				continue
			}
			r.handler.Println("✓ FSM reset to initial state.")

		case "4", "exit", "quit", "q":
			r.handler.Println("\nExiting simulator. Goodbye!")
			return nil

		default:
			r.handler.Println("Invalid option. Please try again.")
		}
	}
}
