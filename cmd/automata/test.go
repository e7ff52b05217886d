package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <input>...",
	Short: "Run input strings through an automaton",
	Long: `Runs every input through the automaton and prints its execution trace.
With --strict the command fails when any input is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("automaton")
		strict, _ := cmd.Flags().GetBool("strict")
		jsonMode, _ := cmd.Flags().GetBool("json")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		_, err = cli.RunBatch(cmd.Context(), app, os.Stdout, args, cli.BatchOptions{
			Automaton: name,
			Strict:    strict,
			JSON:      jsonMode,
			Styled:    cli.IsTerminal(os.Stdout),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().String("automaton", cli.SampleName, "Automaton to run")
	testCmd.Flags().Bool("strict", false, "Exit with status 1 if any input is rejected")
	testCmd.Flags().Bool("json", false, "Print one JSON run record per line")
}
