package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/parityscope/parityscope/internal/contract"
	mcp_internal "github.com/parityscope/parityscope/internal/mcp"
	"github.com/parityscope/parityscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Basis:          schema.PrevalenceBasis,
		TopK:           contract.DefaultTopK,
		Precision:      contract.DefaultPrecision,
		Output:         schema.TextOut,
		HistoryBackend: schema.NoneBackend,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// No history manager is needed for validation failures.
	var mgr contract.HistoryManager
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	t.Run("score_trial invalid basis", func(t *testing.T) {
		res := callTool(t, s, "score_trial", map[string]any{
			"payload": `{"white_pct": 0.62}`,
			"basis":   "incidence",
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid basis")
	})

	t.Run("score_trial missing payload and file", func(t *testing.T) {
		res := callTool(t, s, "score_trial", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "either payload or predictions_file is required")
	})

	t.Run("score_trial malformed payload", func(t *testing.T) {
		res := callTool(t, s, "score_trial", map[string]any{
			"payload": `[1, 2, 3]`,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not a JSON object")
	})

	t.Run("get_largest_gaps invalid basis", func(t *testing.T) {
		res := callTool(t, s, "get_largest_gaps", map[string]any{
			"payload": `{"white_pct": 0.62}`,
			"basis":   "bogus",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid basis")
	})

	t.Run("get_shortfalls missing payload", func(t *testing.T) {
		res := callTool(t, s, "get_shortfalls", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "either payload or predictions_file is required")
	})
}

func TestMCPServerHandlers_Success(t *testing.T) {
	var mgr contract.HistoryManager
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	t.Run("score_trial inline payload", func(t *testing.T) {
		res := callTool(t, s, "score_trial", map[string]any{
			"payload": `{"white_pct": 0.090, "black_pct": 0.116, "female_pct": 0.058}`,
			"top_k":   2.0,
		})
		require.False(t, res.IsError)

		var enriched schema.EnrichedDiversityResult
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &enriched))

		// Three perfect subgroups: 3+3 race points and 3 sex points.
		assert.Equal(t, 9.0, enriched.EquityTotal)
		assert.Len(t, enriched.Breakdown, 7)
		assert.LessOrEqual(t, len(enriched.Gaps), 2)
	})

	t.Run("get_largest_gaps inline payload", func(t *testing.T) {
		res := callTool(t, s, "get_largest_gaps", map[string]any{
			"payload": `{"female_pct": 0.478}`,
		})
		require.False(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Female (+42%)")
	})

	t.Run("get_shortfalls inline payload", func(t *testing.T) {
		res := callTool(t, s, "get_shortfalls", map[string]any{
			"payload": `{"black_pct": 0.146}`,
		})
		require.False(t, res.IsError)

		var rows []schema.ShortfallRow
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &rows))
		assert.Len(t, rows, 7)
	})

	t.Run("get_rubric mortality basis", func(t *testing.T) {
		res := callTool(t, s, "get_rubric", map[string]any{
			"basis": "mortality",
		})
		require.False(t, res.IsError)

		var decoded struct {
			Basis       string                         `json:"basis"`
			TotalPoints int                            `json:"total_points"`
			Burden      map[schema.SubgroupKey]float64 `json:"burden"`
		}
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &decoded))
		assert.Equal(t, "mortality", decoded.Basis)
		assert.Equal(t, 21, decoded.TotalPoints)
		assert.Equal(t, 0.526, decoded.Burden[schema.KeyFemale])
	})
}
