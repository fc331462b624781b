package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralva/gapscope/internal/contract"
	mcp_internal "github.com/seralva/gapscope/internal/mcp"
	"github.com/seralva/gapscope/internal/snapcache"
	"github.com/seralva/gapscope/schema"
)

func mcpTestConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:     contract.DefaultResultLimit,
		Workers:         2,
		Precision:       contract.DefaultPrecision,
		Thresholds:      schema.DefaultThresholds(),
		ConfidenceRules: schema.DefaultConfidenceRules(),
	}
}

// mcpTestBundle writes a small but complete bundle to disk and returns its path.
func mcpTestBundle(t *testing.T) string {
	t.Helper()

	generated := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	bundle := &schema.AnalysisBundle{
		Niche:       "mechanical keyboards",
		ChannelID:   "chan-self",
		GeneratedAt: generated,
	}

	series := schema.KeywordTrendSeries{Keyword: "keyboard mods"}
	for week := range 8 {
		series.Points = append(series.Points, schema.TrendPoint{
			Timestamp: generated.AddDate(0, 0, -7*(8-week)),
			Interest:  float64(10 * (week + 1)),
		})
	}
	bundle.TrendSeries = append(bundle.TrendSeries, series)

	for i := range 6 {
		bundle.CompetitorVideos = append(bundle.CompetitorVideos, schema.CompetitorVideoRecord{
			VideoID:     "vid-" + string(rune('a'+i)),
			ChannelID:   "chan-" + string(rune('a'+i)),
			ViewCount:   int64(10_000 * (i + 1)),
			PublishedAt: generated.AddDate(0, 0, -10),
			Title:       "mechanical keyboard build guide",
		})
	}

	bundle.Topics = []schema.TopicSignals{
		{Topic: "keyboard mods", CommentCount: 80, QuestionCount: 40, UrgencyCount: 16, TrendKeyword: "keyboard mods"},
		{Topic: "switch lubing", CommentCount: 60, QuestionCount: 10, UrgencyCount: 2},
	}

	data, err := contract.EncodeBundle(bundle)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func disabledSnapshotManager() *snapcache.MockSnapshotManager {
	mgr := &snapcache.MockSnapshotManager{}
	mgr.On("GetSnapshotStore").Return(nil)
	return mgr
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
	return res
}

func TestMCPServerHandlers_MissingInput(t *testing.T) {
	s := mcp_internal.NewMCPServer(mcpTestConfig(), disabledSnapshotManager())

	t.Run("analyze_niche without bundle or niche", func(t *testing.T) {
		res := callTool(t, s, "analyze_niche", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "either bundle_path or niche is required")
	})

	t.Run("get_trending_keywords with uncached niche", func(t *testing.T) {
		res := callTool(t, s, "get_trending_keywords", map[string]any{
			"niche": "underwater basket weaving",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no cached snapshot")
	})

	t.Run("analyze_niche with unreadable bundle path", func(t *testing.T) {
		res := callTool(t, s, "analyze_niche", map[string]any{
			"bundle_path": filepath.Join(t.TempDir(), "missing.json"),
		})
		assert.True(t, res.IsError)
	})
}

func TestMCPServerHandlers_AnalyzeNiche(t *testing.T) {
	s := mcp_internal.NewMCPServer(mcpTestConfig(), disabledSnapshotManager())
	bundlePath := mcpTestBundle(t)

	res := callTool(t, s, "analyze_niche", map[string]any{
		"bundle_path": bundlePath,
	})
	require.False(t, res.IsError)

	var report schema.Report
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &report))

	assert.Equal(t, "mechanical keyboards", report.MarketContext.Niche)
	assert.NotEmpty(t, report.GapVerdicts)
}

func TestMCPServerHandlers_GapVerdictLimit(t *testing.T) {
	s := mcp_internal.NewMCPServer(mcpTestConfig(), disabledSnapshotManager())
	bundlePath := mcpTestBundle(t)

	res := callTool(t, s, "get_gap_verdicts", map[string]any{
		"bundle_path": bundlePath,
		"limit":       1.0,
	})
	require.False(t, res.IsError)

	var verdicts []schema.EnrichedVerdict
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &verdicts))

	require.Len(t, verdicts, 1)
	assert.Equal(t, 1, verdicts[0].Rank)
}

func TestMCPServerHandlers_WinningPatterns(t *testing.T) {
	s := mcp_internal.NewMCPServer(mcpTestConfig(), disabledSnapshotManager())
	bundlePath := mcpTestBundle(t)

	// The test bundle carries no thumbnails, so the tool should still
	// succeed and return an empty pattern list.
	res := callTool(t, s, "get_winning_patterns", map[string]any{
		"bundle_path": bundlePath,
	})
	require.False(t, res.IsError)

	var patterns []schema.EnrichedPattern
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &patterns))
	assert.Empty(t, patterns)
}
