package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/seralva/gapscope/core"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/snapcache"
	"github.com/seralva/gapscope/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SnapshotManager
}

// resolveBundle loads the input bundle for a tool call. A bundle_path
// parameter wins; otherwise the cached snapshot for the niche is used.
func (h *toolHandler) resolveBundle(request mcp.CallToolRequest) (*schema.AnalysisBundle, error) {
	if p := request.GetString("bundle_path", ""); p != "" {
		bundle, err := contract.LoadBundle(p)
		if err != nil {
			return nil, err
		}
		if err := snapcache.StoreBundle(h.mgr, bundle); err != nil {
			contract.LogWarn("failed to snapshot bundle", err)
		}
		return bundle, nil
	}

	niche := request.GetString("niche", "")
	if niche == "" {
		return nil, fmt.Errorf("either bundle_path or niche is required")
	}
	bundle, hit, err := snapcache.LoadCachedBundle(h.mgr, niche)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, fmt.Errorf("no cached snapshot for niche %q; provide bundle_path", niche)
	}
	return bundle, nil
}

func (h *toolHandler) runAnalysis(request mcp.CallToolRequest) (*core.AnalysisOutput, *contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if n := request.GetString("niche", ""); n != "" {
		cfg.Niche = n
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	bundle, err := h.resolveBundle(request)
	if err != nil {
		return nil, nil, err
	}

	out, err := core.RunAnalysis(cfg, bundle)
	if err != nil {
		return nil, nil, err
	}
	return out, cfg, nil
}

func (h *toolHandler) handleAnalyzeNiche(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _, err := h.runAnalysis(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(out.Report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrendingKeywords(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, cfg, err := h.runAnalysis(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	trends := out.Trends
	if len(trends) > cfg.ResultLimit {
		trends = trends[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(trends, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGapVerdicts(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, cfg, err := h.runAnalysis(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gap scoring failed: %v", err)), nil
	}

	verdicts := out.Verdicts
	if len(verdicts) > cfg.ResultLimit {
		verdicts = verdicts[:cfg.ResultLimit]
	}
	enriched := schema.EnrichVerdicts(verdicts)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetWinningPatterns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _, err := h.runAnalysis(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pattern correlation failed: %v", err)), nil
	}

	enriched := schema.EnrichPatterns(out.Visual.Patterns)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
