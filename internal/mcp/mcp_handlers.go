package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/spendchart/core"
	"github.com/huangsam/spendchart/internal/contract"
	"github.com/huangsam/spendchart/internal/payload"
	"github.com/huangsam/spendchart/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StateManager
}

// prepare clones the base config, applies the shared size arguments and loads the payload.
func (h *toolHandler) prepare(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, []schema.PayloadRecord, error) {
	cfg := h.baseCfg.Clone()
	if w := request.GetInt("width", 0); w != 0 {
		cfg.Width = w
	}
	if hgt := request.GetInt("height", 0); hgt != 0 {
		cfg.Height = hgt
	}
	if cfg.Width <= 0 || cfg.Width > contract.MaxSurfaceSize || cfg.Height < 0 || cfg.Height > contract.MaxSurfaceSize {
		return nil, nil, fmt.Errorf("surface size must be between 1 and %d pixels", contract.MaxSurfaceSize)
	}

	inline := request.GetString("payload", "")
	path := request.GetString("payload_path", "")
	switch {
	case inline != "":
		records, err := payload.ParseJSON([]byte(inline))
		if err != nil {
			return nil, nil, err
		}
		return cfg, records, nil
	case path != "":
		format := request.GetString("format", "")
		if _, err := payload.DetectFormat(path, format); err != nil {
			return nil, nil, err
		}
		return cfg, payload.NewFileLoader(path, format).Load(ctx), nil
	default:
		return nil, nil, errors.New("payload_path or payload is required")
	}
}

func (h *toolHandler) handlePieLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, records, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.Progress = request.GetFloat("progress", 1)
	if cfg.Progress < 0 || cfg.Progress > 1 {
		return mcp.NewToolResultError("invalid parameters: progress must be between 0 and 1"), nil
	}

	result, err := core.BuildPie(ctx, cfg, records, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pie layout failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleLineLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, records, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if s := request.GetString("amount_scale", ""); s != "" {
		scale := schema.AmountScale(s)
		if _, ok := schema.ValidAmountScales[scale]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: unknown amount scale %q", s)), nil
		}
		cfg.AmountScale = scale
	}

	result, err := core.BuildLine(ctx, cfg, records, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("line layout failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleHitTest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, records, err := h.prepare(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	x, err := request.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	y, err := request.RequireFloat("y")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.Tap(ctx, cfg, records, h.mgr, x, y)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hit test failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
