package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focus-cli/internal/focus"
	"github.com/mj1618/focus-cli/internal/model"
	"github.com/mj1618/focus-cli/internal/output"
	"github.com/mj1618/focus-cli/internal/platform"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	text, err := output.YAML(v)
	if err != nil {
		return fmt.Sprintf("ok: false\nerror: %s", err)
	}
	return text
}

func (s *Server) handleListWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := StringParam(params, "app", "")
	typeTag := StringParam(params, "type", "")
	all := BoolParam(params, "all", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.runner.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	windows := view.Select(model.Query(app, typeTag), all)
	if windows == nil {
		windows = []model.RankedWindow{}
	}
	return mcp.NewToolResultText(resultToText(output.ListResult{
		Ranked:  view.HasRecency,
		TS:      time.Now().Unix(),
		Windows: windows,
	})), nil
}

func (s *Server) handleCloseAndFocus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.runner.CloseAndFocus(ctx)
	if errors.Is(err, platform.ErrActiveWindowNotFound) {
		s.log.Warn().Err(err).Msg("nothing closed")
		return mcp.NewToolResultText(resultToText(result)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleStartOrFocus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	binary := StringParam(params, "binary", "")
	windowName := StringParam(params, "window_name", "")
	if binary == "" || windowName == "" {
		return mcp.NewToolResultError("binary and window_name are required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.runner.StartOrFocus(ctx, binary, windowName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleFocusWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := model.ParseWindowID(StringParam(request.GetArguments(), "id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.runner.Focus(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(focus.FocusResult{OK: true, Action: "focus", Window: w})), nil
}
