// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/spendchart/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Spendchart MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StateManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Spendchart Layout Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	payloadOpts := []mcp.ToolOption{
		mcp.WithString("payload_path", mcp.Description("Path to a JSON or CSV payload file. Either payload_path or payload is required.")),
		mcp.WithString("payload", mcp.Description("Inline JSON payload: an array of {id, name, category, amount, time} with time in epoch milliseconds.")),
		mcp.WithString("format", mcp.Description("Payload file format. Inferred from the extension when omitted."), mcp.Enum("json", "csv")),
		mcp.WithNumber("width", mcp.Description("Surface width in pixels.")),
		mcp.WithNumber("height", mcp.Description("Surface height in pixels.")),
	}

	// --- 1. Tool: pie_layout ---
	s.AddTool(mcp.NewTool("pie_layout", append([]mcp.ToolOption{
		mcp.WithDescription("Compute the spending pie chart: one sector per category with start and sweep angles in degrees."),
		mcp.WithNumber("progress", mcp.Description("Reveal progress between 0 and 1. Defaults to a full reveal.")),
	}, payloadOpts...)...), h.handlePieLayout)

	// --- 2. Tool: line_layout ---
	s.AddTool(mcp.NewTool("line_layout", append([]mcp.ToolOption{
		mcp.WithDescription("Compute the per-category spending line chart: axis bounds and one point per record by day of month."),
		mcp.WithString("amount_scale", mcp.Description("How the vertical maximum is derived."), mcp.Enum("category-total", "record-max")),
	}, payloadOpts...)...), h.handleLineLayout)

	// --- 3. Tool: hit_test ---
	s.AddTool(mcp.NewTool("hit_test", append([]mcp.ToolOption{
		mcp.WithDescription("Find the pie sector under a pointer and return the records of its category."),
		mcp.WithNumber("x", mcp.Description("Pointer x in surface pixels."), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Pointer y in surface pixels."), mcp.Required()),
	}, payloadOpts...)...), h.handleHitTest)

	return s
}

// StartMCPServer starts the Spendchart MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StateManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
