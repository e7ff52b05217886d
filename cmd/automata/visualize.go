package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Print the structure of an automaton",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("automaton")
		rich, _ := cmd.Flags().GetBool("rich")

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.Visualize(cmd.Context(), app, os.Stdout, cli.VisualizeOptions{
			Automaton: name,
			Rich:      rich,
		})
	},
}

func init() {
	rootCmd.AddCommand(visualizeCmd)

	visualizeCmd.Flags().String("automaton", cli.SampleName, "Automaton to visualize")
	visualizeCmd.Flags().Bool("rich", false, "Render as markdown")
}
