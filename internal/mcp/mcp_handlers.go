package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/parityscope/parityscope/core"
	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/internal/payload"
	"github.com/parityscope/parityscope/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// resolveConfig clones the base config and applies shared request arguments.
func (h *toolHandler) resolveConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if b := request.GetString("basis", ""); b != "" {
		basis := schema.BurdenBasis(b)
		if _, ok := schema.ValidBurdenBases[basis]; !ok {
			return nil, fmt.Errorf("invalid basis %q: must be one of prevalence, mortality", b)
		}
		cfg.Basis = basis
	}
	if k := request.GetInt("top_k", 0); k > 0 {
		if k > contract.MaxTopK {
			k = contract.MaxTopK
		}
		cfg.TopK = k
	}
	if p := request.GetString("predictions_file", ""); p != "" {
		cfg.PredictionsFile = p
	}
	return cfg, nil
}

// resolveProportions decodes the inline payload when present, otherwise
// loads the predictions file from the resolved config.
func resolveProportions(request mcp.CallToolRequest, cfg *contract.Config) (schema.Proportions, error) {
	if inline := request.GetString("payload", ""); inline != "" {
		return payload.Decode(strings.NewReader(inline))
	}
	if cfg.PredictionsFile == "" {
		return nil, fmt.Errorf("either payload or predictions_file is required")
	}
	return payload.Load(cfg.PredictionsFile, nil)
}

func (h *toolHandler) handleScoreTrial(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scoring parameters: %v", err)), nil
	}
	preds, err := resolveProportions(request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read predictions: %v", err)), nil
	}

	enriched, _, err := core.ScoreProportions(preds, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetLargestGaps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid gap parameters: %v", err)), nil
	}
	preds, err := resolveProportions(request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read predictions: %v", err)), nil
	}

	report, err := core.RankProportionGaps(preds, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gap ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetShortfalls(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid shortfall parameters: %v", err)), nil
	}
	preds, err := resolveProportions(request, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read predictions: %v", err)), nil
	}

	rows, err := core.ShortfallsForProportions(preds, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("shortfall computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRubric(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.resolveConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rubric parameters: %v", err)), nil
	}

	rubric := core.ActiveRubric(cfg.Basis)
	jsonData, _ := json.MarshalIndent(map[string]any{
		"basis":        cfg.Basis,
		"total_points": schema.TotalPoints,
		"burden":       rubric.Burden,
		"groups":       rubric.Groups,
		"domain_max":   rubric.DomainMax,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
