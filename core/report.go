package core

import (
	"fmt"
	"sort"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

const maxTitlePatterns = 10

// AssembleReport folds every analyzer's output into the final report
// contract. Claims whose confidence tier resolved to INSUFFICIENT fail
// closed: they are moved to the diagnostics section, never into the
// recommendation lists.
func AssembleReport(cfg *contract.Config, bundle *schema.AnalysisBundle,
	trends []schema.TrendResult, saturation schema.SaturationResult,
	visual VisualCorrelation, verdicts []schema.GapVerdict,
	skips []schema.Skip) *schema.Report {

	report := &schema.Report{
		MarketContext: schema.MarketContext{
			Niche:           bundle.Niche,
			SaturationScore: saturation.Score,
			SaturationLevel: saturation.Level,
			TrendingTopics:  trendingTopics(cfg, trends),
		},
		CompetitorIntelligence: schema.CompetitorIntelligence{
			TopPerformingVideos: topVideos(cfg, bundle.CompetitorVideos),
			WinningPatterns: schema.CompetitorPatterns{
				CommonTitlePatterns: ExtractTitlePatterns(TitlesOf(bundle.CompetitorVideos), maxTitlePatterns),
				DominantChannels:    DominantChannels(bundle.CompetitorVideos),
			},
		},
		ThumbnailAnalysis: schema.ThumbnailAnalysis{
			TotalAnalyzed: visual.TotalAnalyzed,
		},
		Diagnostics: schema.Diagnostics{Skips: skips},
	}

	for _, p := range visual.Patterns {
		if p.ConfidenceTier == schema.InsufficientTier {
			report.Diagnostics.InsufficientPatterns = append(report.Diagnostics.InsufficientPatterns, p)
			continue
		}
		report.ThumbnailAnalysis.WinningPatterns = append(
			report.ThumbnailAnalysis.WinningPatterns, toPatternFinding(p))
	}

	for _, v := range verdicts {
		if v.ConfidenceTier == schema.InsufficientTier {
			report.Diagnostics.InsufficientVerdicts = append(report.Diagnostics.InsufficientVerdicts, v)
			continue
		}
		report.GapVerdicts = append(report.GapVerdicts, v)
	}

	return report
}

// trendingTopics picks the strongest trends for the market summary.
func trendingTopics(cfg *contract.Config, trends []schema.TrendResult) []schema.TrendingTopic {
	n := min(cfg.ResultLimit, len(trends))
	topics := make([]schema.TrendingTopic, 0, n)
	for _, tr := range trends[:n] {
		topics = append(topics, schema.TrendingTopic{
			Keyword:    tr.Keyword,
			Trajectory: tr.Trajectory,
			Strength:   tr.Strength,
		})
	}
	return topics
}

// topVideos ranks the competitor scan by views, deduplicated by VideoID.
// Ties break on VideoID so ranking is stable across runs.
func topVideos(cfg *contract.Config, records []schema.CompetitorVideoRecord) []schema.TopVideo {
	unique := dedupByVideoID(records)

	sort.SliceStable(unique, func(i, j int) bool {
		if unique[i].ViewCount != unique[j].ViewCount {
			return unique[i].ViewCount > unique[j].ViewCount
		}
		return unique[i].VideoID < unique[j].VideoID
	})

	n := min(cfg.ResultLimit, len(unique))
	videos := make([]schema.TopVideo, 0, n)
	for _, rec := range unique[:n] {
		videos = append(videos, schema.TopVideo{
			VideoID:   rec.VideoID,
			ChannelID: rec.ChannelID,
			Title:     rec.Title,
			ViewCount: rec.ViewCount,
		})
	}
	return videos
}

// toPatternFinding phrases a winning pattern for readers of the report.
func toPatternFinding(p schema.WinningPattern) schema.PatternFinding {
	return schema.PatternFinding{
		Type:           p.FeatureName,
		Finding:        patternFinding(p),
		ImpactPct:      p.UpliftPct,
		Recommendation: patternRecommendation(p),
		SampleSize:     p.SampleSize,
		ConfidenceTier: p.ConfidenceTier,
	}
}

func patternFinding(p schema.WinningPattern) string {
	switch p.FeatureName {
	case schema.FaceCountFeature:
		return fmt.Sprintf("thumbnails with %s face(s) outperform the baseline by %.1f%%",
			p.FeatureValue, p.UpliftPct)
	case schema.DominantColorFeature:
		return fmt.Sprintf("%s-dominant thumbnails outperform the baseline by %.1f%%",
			p.FeatureValue, p.UpliftPct)
	case schema.TextDensityFeature:
		return fmt.Sprintf("thumbnails with %s text density outperform the baseline by %.1f%%",
			p.FeatureValue, p.UpliftPct)
	case schema.BrightnessFeature:
		return fmt.Sprintf("thumbnails with %s brightness outperform the baseline by %.1f%%",
			p.FeatureValue, p.UpliftPct)
	case schema.FacePositionFeature:
		return fmt.Sprintf("thumbnails with a %s-positioned face outperform the baseline by %.1f%%",
			p.FeatureValue, p.UpliftPct)
	default:
		return fmt.Sprintf("%s=%s outperforms the baseline by %.1f%%",
			p.FeatureName, p.FeatureValue, p.UpliftPct)
	}
}

func patternRecommendation(p schema.WinningPattern) string {
	switch p.FeatureName {
	case schema.FaceCountFeature:
		return fmt.Sprintf("use %s face(s) in upcoming thumbnails", p.FeatureValue)
	case schema.DominantColorFeature:
		return fmt.Sprintf("lead with %s as the dominant thumbnail color", p.FeatureValue)
	case schema.TextDensityFeature:
		return fmt.Sprintf("target %s text density in thumbnail overlays", p.FeatureValue)
	case schema.BrightnessFeature:
		return fmt.Sprintf("aim for %s overall thumbnail brightness", p.FeatureValue)
	case schema.FacePositionFeature:
		return fmt.Sprintf("place the dominant face on the %s of the frame", p.FeatureValue)
	default:
		return fmt.Sprintf("prefer %s=%s", p.FeatureName, p.FeatureValue)
	}
}
