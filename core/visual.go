package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// featureBucket identifies one (feature, value) cell during correlation.
type featureBucket struct {
	Feature schema.FeatureName
	Value   string
}

// bucketStats accumulates outcomes for one bucket.
type bucketStats struct {
	totalViews float64
	count      int
}

// VisualCorrelation is the correlation engine's full output: the winning
// patterns plus the per-sample exclusions it recorded along the way.
type VisualCorrelation struct {
	Patterns      []schema.WinningPattern
	TotalAnalyzed int
	Skips         []schema.Skip
}

// CorrelateThumbnails buckets thumbnail features and reports the buckets
// whose mean views strictly beat the channel-baseline mean by more than the
// configured uplift. Samples whose channel baseline rests on too few uploads
// are excluded and recorded as skips rather than polluting the baseline.
// Bucket iteration follows sample discovery order so runs are reproducible.
func CorrelateThumbnails(cfg *contract.Config, samples []schema.ThumbnailSample) (VisualCorrelation, error) {
	out := VisualCorrelation{}

	included := make([]schema.ThumbnailSample, 0, len(samples))
	for _, s := range samples {
		if s.Outcome.ChannelSampleCount < minChannelBaselineSamples {
			out.Skips = append(out.Skips, schema.Skip{
				Stage:   "visual_pattern",
				Subject: s.Outcome.SubjectID,
				Reason: fmt.Sprintf("channel baseline has %d samples, need %d",
					s.Outcome.ChannelSampleCount, minChannelBaselineSamples),
			})
			continue
		}
		included = append(included, s)
	}
	out.TotalAnalyzed = len(included)

	if len(included) == 0 {
		return out, fmt.Errorf("thumbnail correlation: %w", ErrInsufficientData)
	}

	baseline := 0.0
	for _, s := range included {
		baseline += s.Outcome.ChannelAverageViews
	}
	baseline /= float64(len(included))
	if baseline <= 0 {
		return out, fmt.Errorf("thumbnail correlation: zero channel baseline: %w", ErrInsufficientData)
	}

	stats := make(map[featureBucket]*bucketStats)
	order := make([]featureBucket, 0)

	record := func(s schema.ThumbnailSample, feature schema.FeatureName, value string) {
		key := featureBucket{Feature: feature, Value: value}
		st, ok := stats[key]
		if !ok {
			st = &bucketStats{}
			stats[key] = st
			order = append(order, key)
		}
		st.totalViews += float64(s.Outcome.Views)
		st.count++
	}

	for _, s := range included {
		f := s.Features
		record(s, schema.FaceCountFeature, faceCountBucket(f.FaceCount))
		if color, ok := colorBucket(f.DominantColors); ok {
			record(s, schema.DominantColorFeature, color)
		}
		record(s, schema.TextDensityFeature, textDensityBucket(f.TextDensityScore))
		record(s, schema.BrightnessFeature, brightnessBucket(f.Brightness))
		if f.FaceCount > 0 && f.FacePosition != schema.FaceNone && f.FacePosition != "" {
			record(s, schema.FacePositionFeature, string(f.FacePosition))
		}
	}

	patterns := make([]schema.WinningPattern, 0)
	for _, key := range order {
		st := stats[key]
		if st.count < cfg.Thresholds.MinBucketSize {
			continue
		}
		mean := st.totalViews / float64(st.count)
		uplift := (mean - baseline) / baseline * 100
		if uplift <= cfg.Thresholds.MinUpliftPct {
			continue // strict bound: exactly the minimum is not a pattern
		}
		patterns = append(patterns, schema.WinningPattern{
			FeatureName:    key.Feature,
			FeatureValue:   key.Value,
			UpliftPct:      uplift,
			SampleSize:     st.count,
			ConfidenceTier: Calibrate(cfg, schema.RuleVisualPattern, st.count),
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].UpliftPct != patterns[j].UpliftPct {
			return patterns[i].UpliftPct > patterns[j].UpliftPct
		}
		return patterns[i].SampleSize > patterns[j].SampleSize
	})

	out.Patterns = patterns
	return out, nil
}

func faceCountBucket(n int) string {
	switch {
	case n <= 0:
		return "0"
	case n == 1:
		return "1"
	default:
		return "2+"
	}
}

func textDensityBucket(score float64) string {
	switch {
	case score >= schema.TextDensityHighMin:
		return "HIGH"
	case score >= schema.TextDensityMedMin:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func brightnessBucket(luma float64) string {
	switch {
	case luma >= schema.BrightnessHighMin:
		return "HIGH"
	case luma >= schema.BrightnessMedMin:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// colorBucket snaps the top dominant color onto the fixed palette by hue
// distance. Low-saturation colors resolve to a grayscale name by lightness
// since hue is meaningless there.
func colorBucket(colors []schema.ColorShare) (string, bool) {
	if len(colors) == 0 {
		return "", false
	}
	h, s, l, ok := hexToHSL(colors[0].Hex)
	if !ok {
		return "", false
	}

	if s < 0.15 {
		switch {
		case l >= 0.85:
			return "white", true
		case l <= 0.15:
			return "black", true
		default:
			return "gray", true
		}
	}

	best := schema.ColorPalette[0].Name
	bestDist := math.MaxFloat64
	for _, swatch := range schema.ColorPalette {
		d := math.Abs(h - swatch.Hue)
		if d > 180 {
			d = 360 - d
		}
		if d < bestDist {
			bestDist = d
			best = swatch.Name
		}
	}
	return best, true
}

// hexToHSL parses "#rrggbb" (leading '#' optional) into hue degrees,
// saturation and lightness in [0,1].
func hexToHSL(hex string) (h, s, l float64, ok bool) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}

	r := float64(rv) / 255
	g := float64(gv) / 255
	b := float64(bv) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l, true
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l, true
}
