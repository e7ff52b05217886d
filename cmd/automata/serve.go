package main

import (
	"fmt"
	"net"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the automata registry as a JSON API over HTTP, with Prometheus
metrics on /metrics and a health probe on /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		addr := app.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", addr, err)
		}

		fmt.Printf("Starting Automata Server on %s\n", ln.Addr())
		return cli.Serve(cmd.Context(), app, cli.NewHTTPServer(app, addr), ln)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides server.addr)")
}
