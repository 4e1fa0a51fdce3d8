package cmd

import (
	"github.com/mj1618/focus-cli/internal/server"
	"github.com/mj1618/focus-cli/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing focus-cli tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes list_windows,
close_and_focus, start_or_focus and focus_window as tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  focus-cli serve
  focus-cli serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config: stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config: 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := server.Config{Transport: cfg.Serve.Transport, Port: cfg.Serve.Port}
	if cmd.Flags().Changed("transport") {
		sc.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}

	runner, done, err := newRunner()
	if err != nil {
		return err
	}
	defer done()

	return server.New(runner, version.Version, log).Serve(sc)
}
