package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
)

// ErrRejected is returned by RunBatch in strict mode when any input is rejected.
var ErrRejected = errors.New("one or more inputs were rejected")

// InteractiveOptions configures RunInteractive.
type InteractiveOptions struct {
	AutoTests []string
	Styled    bool
	Rich      bool
	NoBanner  bool
}

// RunInteractive shows the banner and the sample automaton, runs the
// automatic tests and then hands over to the menu until the user exits.
func RunInteractive(ctx context.Context, app *App, in io.Reader, out io.Writer, opts InteractiveOptions) error {
	if !opts.NoBanner {
		tui.PrintBanner(out)
	}
	fmt.Fprintln(out, "✓ Sample FSM created (accepts strings matching pattern: ab(cab)*)")

	runnerOpts := []runner.Option{
		runner.WithLogger(app.Logger),
		runner.WithStyled(opts.Styled),
		runner.WithRunFunc(func(ctx context.Context, input string) (*domain.ProcessResult, error) {
			res, _, err := app.Manager.Run(ctx, SampleName, input)
			return res, err
		}),
		runner.WithGuard(func(ctx context.Context, fn func(context.Context, ports.Automaton) error) error {
			return app.Manager.Do(ctx, SampleName, fn)
		}),
	}
	if opts.Rich {
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer()))
	}

	r := runner.NewRunner(runner.NewTextHandler(in, out), runnerOpts...)
	r.Visualize(ctx, app.Sample)
	fmt.Fprintln(out)
	r.AutoTest(ctx, app.Sample, opts.AutoTests)

	return handleExecutionError(r.Run(ctx, app.Sample))
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Automaton string
	Strict    bool
	JSON      bool
	Styled    bool
}

// RunBatch runs every input against one automaton and prints either the
// traces or one JSON run record per line. It returns the number of rejected
// inputs, and ErrRejected in strict mode when that number is not zero.
func RunBatch(ctx context.Context, app *App, out io.Writer, inputs []string, opts BatchOptions) (int, error) {
	name := opts.Automaton
	if name == "" {
		name = SampleName
	}

	enc := json.NewEncoder(out)
	rejected := 0
	for _, input := range inputs {
		res, rec, err := app.Manager.Run(ctx, name, input)
		if err != nil {
			return rejected, fmt.Errorf("error processing %q: %w", input, err)
		}
		if !res.Accepted {
			rejected++
		}

		if opts.JSON {
			if err := enc.Encode(rec); err != nil {
				return rejected, err
			}
			continue
		}
		fmt.Fprintf(out, "Input: %q\n", input)
		tui.PrintTrace(out, res, opts.Styled)
		fmt.Fprintln(out)
	}

	if !opts.JSON {
		printSystemMessage(out, "%d/%d accepted", len(inputs)-rejected, len(inputs))
	}
	if opts.Strict && rejected > 0 {
		return rejected, ErrRejected
	}
	return rejected, nil
}

// VisualizeOptions configures Visualize.
type VisualizeOptions struct {
	Automaton string
	Rich      bool
}

// Visualize prints the structure of an automaton, rendered as markdown when Rich is set.
func Visualize(ctx context.Context, app *App, out io.Writer, opts VisualizeOptions) error {
	name := opts.Automaton
	if name == "" {
		name = SampleName
	}
	def, err := app.Manager.Describe(ctx, name)
	if err != nil {
		return err
	}
	if opts.Rich {
		rendered, err := tui.NewRenderer()(tui.DefinitionMarkdown(def))
		if err == nil {
			fmt.Fprint(out, rendered)
			return nil
		}
		app.Logger.Debug("markdown rendering failed, falling back to plain", "err", err)
	}
	tui.Visualize(out, def)
	return nil
}

// GraphOptions configures Graph.
type GraphOptions struct {
	Automaton string
	// Trace, when set, is run first and its path is highlighted.
	Trace *string
}

// Graph prints the Mermaid diagram of an automaton.
func Graph(ctx context.Context, app *App, out io.Writer, opts GraphOptions) error {
	name := opts.Automaton
	if name == "" {
		name = SampleName
	}

	// The overlay run is a preview: it is not recorded in history.
	var overlay *graph.GraphOverlay
	if opts.Trace != nil {
		err := app.Manager.Do(ctx, name, func(ctx context.Context, a ports.Automaton) error {
			res, err := a.ProcessString(ctx, *opts.Trace)
			if err != nil {
				return err
			}
			overlay = graph.OverlayFromResult(res)
			return nil
		})
		if err != nil {
			return err
		}
	}

	def, err := app.Manager.Describe(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprint(out, graph.GenerateMermaid(def, overlay))
	return nil
}

// Validate checks the structure of the named automaton and reports the outcome.
func Validate(ctx context.Context, app *App, out io.Writer, name string) error {
	if name == "" {
		name = SampleName
	}
	def, err := app.Manager.Describe(ctx, name)
	if err != nil {
		return err
	}
	if err := validator.ValidateDefinition(def); err != nil {
		return fmt.Errorf("automaton '%s' is invalid: %w", name, err)
	}
	fmt.Fprintf(out, "✓ Automaton '%s' is valid.\n", name)
	return nil
}
