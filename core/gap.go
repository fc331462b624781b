package core

import (
	"sort"

	"github.com/seralva/gapscope/core/norm"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

var (
	questionRatioSpec = norm.Spec(0, maxQuestionRatio)
	urgencyRatioSpec  = norm.Spec(0, maxUrgencyRatio)
	ownCoverageSpec   = norm.Spec(0, maxOwnCoverage)
	competitorSpec    = norm.MetricSpec{
		Min:       0,
		Max:       maxCompetitorCover,
		Direction: norm.LowerIsBetter, // fewer covering competitors, bigger gap
		Clamp:     true,
	}
)

// ScoreGaps turns topic signals into classified gap verdicts. Trend strength
// is joined in through each topic's TrendKeyword; topics without a matching
// trend series score that component as zero. Topics with no comments at all
// cannot carry a demand signal and are skipped.
func ScoreGaps(cfg *contract.Config, topics []schema.TopicSignals,
	trends map[string]schema.TrendResult,
	competitorTitles, channelTitles []string) ([]schema.GapVerdict, []schema.Skip) {

	verdicts := make([]schema.GapVerdict, 0, len(topics))
	skips := make([]schema.Skip, 0)

	for _, topic := range topics {
		if topic.CommentCount == 0 {
			skips = append(skips, schema.Skip{
				Stage:   "gap_verdict",
				Subject: topic.Topic,
				Reason:  "no comments backing the topic",
			})
			continue
		}

		demand := demandScore(cfg, topic, trends)
		competitorGap := mustNormalize(competitorSpec,
			float64(CountCoveringTitles(topic.Topic, competitorTitles)))
		coverage := mustNormalize(ownCoverageSpec,
			float64(CountCoveringTitles(topic.Topic, channelTitles)))

		raw := demand * competitorGap / maxF(coverage, cfg.Thresholds.GapEpsilon)
		gapScore := mustNormalize(norm.Spec(0, cfg.Thresholds.GapRawCeiling), raw)

		verdicts = append(verdicts, schema.GapVerdict{
			Topic:              topic.Topic,
			DemandScore:        demand,
			CompetitorGapScore: competitorGap,
			CoverageScore:      coverage,
			GapScore:           gapScore,
			Classification:     classifyGap(cfg, demand, coverage),
			ConfidenceTier:     Calibrate(cfg, schema.RuleGapVerdict, topic.CommentCount),
			SampleSize:         topic.CommentCount,
		})
	}

	sort.SliceStable(verdicts, func(i, j int) bool {
		if verdicts[i].GapScore != verdicts[j].GapScore {
			return verdicts[i].GapScore > verdicts[j].GapScore
		}
		return verdicts[i].Topic < verdicts[j].Topic
	})

	return verdicts, skips
}

// demandScore blends question frequency, trend strength and urgency
// frequency into one 0-100 demand figure.
func demandScore(cfg *contract.Config, topic schema.TopicSignals, trends map[string]schema.TrendResult) float64 {
	total := float64(topic.CommentCount)
	questionRatio := float64(topic.QuestionCount) / total
	urgencyRatio := float64(topic.UrgencyCount) / total

	questions := mustNormalize(questionRatioSpec, questionRatio)
	urgency := mustNormalize(urgencyRatioSpec, urgencyRatio)

	trendStrength := 0.0
	if topic.TrendKeyword != "" {
		if tr, ok := trends[topic.TrendKeyword]; ok {
			trendStrength = tr.Strength
		}
	}

	weights := cfg.GetWeights("demand")
	return norm.Clamp100(
		questions*weights[schema.WeightQuestions] +
			trendStrength*weights[schema.WeightTrend] +
			urgency*weights[schema.WeightUrgency])
}

// classifyGap applies the verdict rules in precedence order. High demand
// with near-zero coverage is a true gap; high demand with weak coverage
// means the topic is covered but under-served. Everything else, including
// mid-band demand, stays low priority.
func classifyGap(cfg *contract.Config, demand, coverage float64) schema.GapClassification {
	th := cfg.Thresholds
	switch {
	case demand >= th.DemandHigh && coverage < th.CoverageLow:
		return schema.TrueGap
	case demand >= th.DemandHigh && coverage < th.CoverageWeak:
		return schema.UnderExplained
	default:
		return schema.LowPriority
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// TitlesOf projects competitor records to their titles.
func TitlesOf(records []schema.CompetitorVideoRecord) []string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	return titles
}

// ChannelTitlesOf projects the subject channel's records to their titles.
func ChannelTitlesOf(records []schema.ChannelVideoRecord) []string {
	titles := make([]string, 0, len(records))
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	return titles
}
