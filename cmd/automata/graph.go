package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph LR) of the automaton. With --trace the input
is run first and the visited states and verdict are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("automaton")

		opts := cli.GraphOptions{Automaton: name}
		if cmd.Flags().Changed("trace") {
			trace, _ := cmd.Flags().GetString("trace")
			opts.Trace = &trace
		}

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.Graph(cmd.Context(), app, os.Stdout, opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("automaton", cli.SampleName, "Automaton to export")
	graphCmd.Flags().String("trace", "", "Input whose path is highlighted")
}
