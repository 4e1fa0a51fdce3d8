// Package server exposes the window workflows as Model Context Protocol
// tools.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/rs/zerolog"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around a workflow runner.
type Server struct {
	runner *focus.Runner
	// mu serializes tool calls; each workflow reads and then acts on the
	// window list and must not interleave with another.
	mu  sync.Mutex
	mcp *mcpserver.MCPServer
	log zerolog.Logger
}

// New creates an MCP server with all focus-cli tools registered.
func New(runner *focus.Runner, version string, log zerolog.Logger) *Server {
	s := &Server{
		runner: runner,
		log:    log.With().Str("component", "mcp").Logger(),
	}
	s.mcp = mcpserver.NewMCPServer("focus-cli", version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	s.log.Info().Str("transport", cfg.Transport).Int("port", cfg.Port).Msg("serving")
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List desktop windows, most recently focused first. Each window has an id, desktop, type (WM_CLASS, e.g. 'Mail.Thunderbird'), application, host, name and rank (higher is more recent, -1 when unknown)."),
			mcp.WithString("app", mcp.Description("Filter by application (e.g. 'Thunderbird')")),
			mcp.WithString("type", mcp.Description("Filter by exact type tag (e.g. 'Mail.Thunderbird')")),
			mcp.WithBoolean("all", mcp.Description("Include windows missing from the focus history")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("close_and_focus",
			mcp.WithDescription("Close the focused window and focus the most recently used remaining window of the same application"),
		),
		s.handleCloseAndFocus,
	)

	s.mcp.AddTool(
		mcp.NewTool("start_or_focus",
			mcp.WithDescription("Focus the most recently used window matching window_name, or start binary when none matches"),
			mcp.WithString("binary", mcp.Required(), mcp.Description("Program to start when no window matches (e.g. 'thunderbird')")),
			mcp.WithString("window_name", mcp.Required(), mcp.Description("Type tag or application to match (e.g. 'Mail.Thunderbird' or 'Thunderbird')")),
		),
		s.handleStartOrFocus,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus_window",
			mcp.WithDescription("Focus a window by its id as returned by list_windows"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Hexadecimal X window id (e.g. '0x03a00007')")),
		),
		s.handleFocusWindow,
	)
}
