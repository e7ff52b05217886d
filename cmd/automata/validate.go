package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an automaton for structural problems",
	Long: `Reports unreachable states, transitions shadowed by an earlier one on the
same symbol, and automata whose accepting states cannot be reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("automaton")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.Validate(cmd.Context(), app, os.Stdout, name)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("automaton", cli.SampleName, "Automaton to validate")
}
