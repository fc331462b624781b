// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seralva/gapscope/internal/contract"
)

// NewMCPServer initializes and configures the Gapscope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SnapshotManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gapscope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_niche ---
	s.AddTool(mcp.NewTool("analyze_niche",
		mcp.WithDescription("Run the full gap intelligence analysis over an input bundle and return the structured report."),
		mcp.WithString("bundle_path", mcp.Description("Path to a JSON input bundle (omit to use the cached snapshot for the niche).")),
		mcp.WithString("niche", mcp.Description("Niche whose cached snapshot should be analyzed when no bundle path is given.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked results returned.")),
	), h.handleAnalyzeNiche)

	// --- 2. Tool: get_trending_keywords ---
	s.AddTool(mcp.NewTool("get_trending_keywords",
		mcp.WithDescription("Classify keyword trajectories and rank them by trend strength."),
		mcp.WithString("bundle_path", mcp.Description("Path to a JSON input bundle.")),
		mcp.WithString("niche", mcp.Description("Niche whose cached snapshot should be analyzed.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of keywords returned.")),
	), h.handleGetTrendingKeywords)

	// --- 3. Tool: get_gap_verdicts ---
	s.AddTool(mcp.NewTool("get_gap_verdicts",
		mcp.WithDescription("Score and classify content gaps for every topic in the bundle."),
		mcp.WithString("bundle_path", mcp.Description("Path to a JSON input bundle.")),
		mcp.WithString("niche", mcp.Description("Niche whose cached snapshot should be analyzed.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of verdicts returned.")),
	), h.handleGetGapVerdicts)

	// --- 4. Tool: get_winning_patterns ---
	s.AddTool(mcp.NewTool("get_winning_patterns",
		mcp.WithDescription("Correlate thumbnail features against performance and return the winning patterns."),
		mcp.WithString("bundle_path", mcp.Description("Path to a JSON input bundle.")),
		mcp.WithString("niche", mcp.Description("Niche whose cached snapshot should be analyzed.")),
	), h.handleGetWinningPatterns)

	return s
}

// StartMCPServer starts the Gapscope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SnapshotManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
