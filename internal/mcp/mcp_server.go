// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/parityscope/parityscope/internal/contract"
)

// NewMCPServer initializes and configures the Parityscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Parityscope Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_trial ---
	s.AddTool(mcp.NewTool("score_trial",
		mcp.WithDescription("Score a clinical trial's predicted enrollment against population disease burden. Returns the 21-point equity breakdown, the 0-100 diversity score, and the largest representation gaps."),
		mcp.WithString("payload", mcp.Description("JSON object mapping subgroup keys (e.g. black_pct, female_pct) to predicted enrollment fractions. Values in [0,1]; use null for unknown.")),
		mcp.WithString("predictions_file", mcp.Description("Path to a JSON predictions file (used when payload is not given).")),
		mcp.WithString("basis", mcp.Description("Reference-burden basis (prevalence or mortality). Defaults to 'prevalence'."), mcp.Enum("prevalence", "mortality")),
		mcp.WithNumber("top_k", mcp.Description("Number of gaps to include in the summary.")),
	), h.handleScoreTrial)

	// --- 2. Tool: get_largest_gaps ---
	s.AddTool(mcp.NewTool("get_largest_gaps",
		mcp.WithDescription("Rank the largest representation gaps between predicted enrollment and disease burden."),
		mcp.WithString("payload", mcp.Description("JSON object mapping subgroup keys to predicted enrollment fractions.")),
		mcp.WithString("predictions_file", mcp.Description("Path to a JSON predictions file (used when payload is not given).")),
		mcp.WithString("basis", mcp.Description("Reference-burden basis (prevalence or mortality)."), mcp.Enum("prevalence", "mortality")),
		mcp.WithNumber("top_k", mcp.Description("Number of gaps to return.")),
	), h.handleGetLargestGaps)

	// --- 3. Tool: get_shortfalls ---
	s.AddTool(mcp.NewTool("get_shortfalls",
		mcp.WithDescription("Compute the raw signed shortfall (predicted minus burden) for every subgroup in the burden table."),
		mcp.WithString("payload", mcp.Description("JSON object mapping subgroup keys to predicted enrollment fractions.")),
		mcp.WithString("predictions_file", mcp.Description("Path to a JSON predictions file (used when payload is not given).")),
		mcp.WithString("basis", mcp.Description("Reference-burden basis (prevalence or mortality)."), mcp.Enum("prevalence", "mortality")),
	), h.handleGetShortfalls)

	// --- 4. Tool: get_rubric ---
	s.AddTool(mcp.NewTool("get_rubric",
		mcp.WithDescription("Display the active scoring rubric: domains, subgroup keys, burden shares, and point budgets."),
		mcp.WithString("basis", mcp.Description("Reference-burden basis (prevalence or mortality)."), mcp.Enum("prevalence", "mortality")),
	), h.handleGetRubric)

	return s
}

// StartMCPServer starts the Parityscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
