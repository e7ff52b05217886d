package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive simulator",
	Long: `Builds the sample automaton, prints its structure, runs the automatic tests
and then opens the menu to test strings, visualize or reset the automaton.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		noAuto, _ := cmd.Flags().GetBool("no-auto-tests")
		rich, _ := cmd.Flags().GetBool("rich")
		autoTests, _ := cmd.Flags().GetStringSlice("auto-test")

		if noAuto {
			autoTests = nil
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.RunInteractive(cmd.Context(), app, os.Stdin, os.Stdout, cli.InteractiveOptions{
			AutoTests: autoTests,
			Styled:    cli.IsTerminal(os.Stdout),
			Rich:      rich,
			NoBanner:  noBanner,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("no-banner", false, "Do not print the startup banner")
	runCmd.Flags().Bool("no-auto-tests", false, "Skip the automatic tests")
	runCmd.Flags().StringSlice("auto-test", runner.DefaultAutoTests, "Inputs run before the menu")
	runCmd.Flags().Bool("rich", false, "Render the visualization as markdown")

	// 'run' is the default when no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
