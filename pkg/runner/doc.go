/*
Package runner implements the interactive menu loop for an automaton.

It is the terminal front-end of the simulator: a TextHandler reads and
length-checks lines (with a background pump so reads honour context
cancellation), and a Runner offers the test / visualize / reset / exit menu
over any ports.Automaton.

# Usage

	h := runner.NewTextHandler(os.Stdin, os.Stdout)
	r := runner.NewRunner(h, runner.WithStyled(true))

	r.AutoTest(ctx, a, runner.DefaultAutoTests)
	if err := r.Run(ctx, a); err != nil {
		log.Fatal(err)
	}
*/
package runner
