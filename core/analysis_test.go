package core

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralva/gapscope/schema"
)

// testBundle builds a bundle exercising every analyzer at once.
func testBundle() *schema.AnalysisBundle {
	generated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	competitors := make([]schema.CompetitorVideoRecord, 0, 12)
	for i := range 12 {
		competitors = append(competitors, schema.CompetitorVideoRecord{
			VideoID:     fmt.Sprintf("vid-%02d", i),
			ChannelID:   fmt.Sprintf("chan-%d", i%6),
			ViewCount:   int64(10_000 * (i + 1)),
			PublishedAt: generated.AddDate(0, 0, -5*i),
			Title:       fmt.Sprintf("mechanical keyboard build part %d", i),
		})
	}

	thumbnails := make([]schema.ThumbnailSample, 0, 12)
	for i := range 12 {
		views := int64(1000)
		faces := 0
		if i < 6 {
			views = 3000
			faces = 1
		}
		thumbnails = append(thumbnails, schema.ThumbnailSample{
			Features: schema.ThumbnailFeatureSet{
				FaceCount:        faces,
				FacePosition:     schema.FaceCenter,
				TextDensityScore: 0.2,
				Brightness:       120,
				DominantColors:   []schema.ColorShare{{Hex: "#ff0000", Share: 0.7}},
			},
			Outcome: schema.PerformanceOutcome{
				SubjectID:           fmt.Sprintf("vid-%02d", i),
				Views:               views,
				ChannelAverageViews: 1500,
				ChannelSampleCount:  12,
			},
		})
	}

	return &schema.AnalysisBundle{
		Niche:       "mechanical keyboards",
		ChannelID:   "subject-chan",
		GeneratedAt: generated,
		TrendSeries: []schema.KeywordTrendSeries{
			seriesOf("keyboard mods", 10, 20, 30, 40, 50, 60, 70, 80),
			seriesOf("switch lubing", 50, 50, 50, 50, 50, 50, 50, 50),
			seriesOf("lonely keyword", 42),
		},
		CompetitorVideos: competitors,
		ChannelVideos: []schema.ChannelVideoRecord{
			{VideoID: "own-1", Title: "my desk setup", ViewCount: 500, PublishedAt: generated.AddDate(0, -1, 0)},
		},
		Thumbnails: thumbnails,
		Topics: []schema.TopicSignals{
			{Topic: "keyboard mods", CommentCount: 80, QuestionCount: 40, UrgencyCount: 16, TrendKeyword: "keyboard mods"},
			{Topic: "ghost topic", CommentCount: 0},
		},
	}
}

func TestRunAnalysisFullPipeline(t *testing.T) {
	cfg := newTestConfig()
	out, err := RunAnalysis(cfg, testBundle())
	require.NoError(t, err)
	require.NotNil(t, out.Report)

	report := out.Report
	assert.Equal(t, "mechanical keyboards", report.MarketContext.Niche)
	assert.NotEmpty(t, report.MarketContext.TrendingTopics)
	assert.NotZero(t, report.MarketContext.SaturationScore)

	// The 1-point series becomes a typed skip, never an abort.
	var trendSkips, gapSkips int
	for _, s := range report.Diagnostics.Skips {
		switch s.Stage {
		case "trend_momentum":
			trendSkips++
			assert.Equal(t, "lonely keyword", s.Subject)
		case "gap_verdict":
			gapSkips++
			assert.Equal(t, "ghost topic", s.Subject)
		}
	}
	assert.Equal(t, 1, trendSkips)
	assert.Equal(t, 1, gapSkips)

	// Trend results come back strength-ordered regardless of pool scheduling.
	require.Len(t, out.Trends, 2)
	assert.GreaterOrEqual(t, out.Trends[0].Strength, out.Trends[1].Strength)

	assert.Equal(t, 12, report.ThumbnailAnalysis.TotalAnalyzed)
	assert.NotEmpty(t, report.CompetitorIntelligence.TopPerformingVideos)
	assert.Equal(t, int64(120_000), report.CompetitorIntelligence.TopPerformingVideos[0].ViewCount)
}

func TestRunAnalysisInsufficientClaimsFailClosed(t *testing.T) {
	cfg := newTestConfig()
	out, err := RunAnalysis(cfg, testBundle())
	require.NoError(t, err)

	for _, v := range out.Report.GapVerdicts {
		assert.NotEqual(t, schema.InsufficientTier, v.ConfidenceTier)
	}
	for _, p := range out.Report.ThumbnailAnalysis.WinningPatterns {
		assert.NotEqual(t, schema.InsufficientTier, p.ConfidenceTier)
	}
	// The well-backed topic lands in diagnostics or verdicts, never both.
	total := len(out.Report.GapVerdicts) + len(out.Report.Diagnostics.InsufficientVerdicts)
	assert.Equal(t, len(out.Verdicts), total)
}

func TestRunAnalysisDeterministic(t *testing.T) {
	cfg := newTestConfig()
	cfg.Workers = 4

	first, err := RunAnalysis(cfg, testBundle())
	require.NoError(t, err)
	second, err := RunAnalysis(cfg, testBundle())
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first.Report)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second.Report)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestRunAnalysisEmptyBundleSections(t *testing.T) {
	cfg := newTestConfig()
	bundle := &schema.AnalysisBundle{
		Niche:       "empty niche",
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	out, err := RunAnalysis(cfg, bundle)
	require.NoError(t, err)
	require.NotNil(t, out.Report)

	// Every section is empty but present; the missing scan is a skip.
	assert.Empty(t, out.Report.GapVerdicts)
	assert.Empty(t, out.Report.MarketContext.TrendingTopics)
	found := false
	for _, s := range out.Report.Diagnostics.Skips {
		if s.Stage == "niche_saturation" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRunAnalysisNilBundle(t *testing.T) {
	cfg := newTestConfig()
	_, err := RunAnalysis(cfg, nil)
	assert.Error(t, err)
}
