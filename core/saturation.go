package core

import (
	"fmt"
	"time"

	"github.com/seralva/gapscope/core/norm"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

var (
	medianViewsSpec = norm.Spec(0, maxMedianViews)
	diversitySpec   = norm.Spec(0, maxDistinctChannels)
	recencySpec     = norm.Spec(0, 1)
)

// AnalyzeSaturation scores how crowded a niche is from its competitor
// video set. Records sharing a VideoID are deduplicated first-wins before
// any statistic is computed.
func AnalyzeSaturation(cfg *contract.Config, niche string, records []schema.CompetitorVideoRecord, now time.Time) (schema.SaturationResult, error) {
	unique := dedupByVideoID(records)
	if len(unique) == 0 {
		return schema.SaturationResult{}, fmt.Errorf("saturation for %q: %w", niche, ErrInsufficientData)
	}

	views := make([]float64, 0, len(unique))
	channels := make(map[string]struct{})
	recent := 0
	cutoff := now.AddDate(0, 0, -cfg.Thresholds.RecencyWindowDays)

	for _, rec := range unique {
		views = append(views, float64(rec.ViewCount))
		if rec.ChannelID != "" {
			channels[rec.ChannelID] = struct{}{}
		}
		if rec.PublishedAt.After(cutoff) {
			recent++
		}
	}

	medianViews := norm.Median(views)
	recentFraction := float64(recent) / float64(len(unique))

	viewVolume := norm.Clamp100(mustNormalize(medianViewsSpec, medianViews))
	diversity := norm.Clamp100(mustNormalize(diversitySpec, float64(len(channels))))
	recency := norm.Clamp100(mustNormalize(recencySpec, recentFraction))

	weights := cfg.GetWeights("saturation")
	score := norm.Clamp100(
		viewVolume*weights[schema.WeightViews] +
			diversity*weights[schema.WeightDiversity] +
			recency*weights[schema.WeightRecency])

	return schema.SaturationResult{
		Score:            score,
		Level:            classifySaturation(cfg, score),
		ViewVolume:       viewVolume,
		ChannelDiversity: diversity,
		Recency:          recency,
		MedianViews:      int64(medianViews),
		DistinctChans:    len(channels),
		RecentFraction:   recentFraction,
		SampleSize:       len(unique),
		ConfidenceTier:   Calibrate(cfg, schema.RuleNicheSaturation, len(channels)),
	}, nil
}

func classifySaturation(cfg *contract.Config, score float64) schema.SaturationLevel {
	switch {
	case score > cfg.Thresholds.SaturationHigh:
		return schema.HighSaturation
	case score < cfg.Thresholds.SaturationLow:
		return schema.LowSaturation
	default:
		return schema.MediumSaturation
	}
}

func dedupByVideoID(records []schema.CompetitorVideoRecord) []schema.CompetitorVideoRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]schema.CompetitorVideoRecord, 0, len(records))
	for _, rec := range records {
		if rec.VideoID != "" {
			if _, dup := seen[rec.VideoID]; dup {
				continue
			}
			seen[rec.VideoID] = struct{}{}
		}
		out = append(out, rec)
	}
	return out
}

// mustNormalize is for specs with Clamp set or inputs already bounded.
func mustNormalize(spec norm.MetricSpec, value float64) float64 {
	spec.Clamp = true
	v, _ := norm.Normalize(value, spec)
	return v
}
