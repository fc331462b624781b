package core

import (
	"fmt"
	"math"

	"github.com/seralva/gapscope/core/norm"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// interestSpec maps provider interest scores (already 0-100) through the
// shared normalization contract so malformed inputs clamp instead of leaking.
var interestSpec = norm.Spec(0, 100)

// AnalyzeTrend classifies one keyword's interest trajectory and computes its
// composite trend strength. A series with fewer than 2 points cannot carry a
// trajectory and returns ErrInsufficientData; callers record that as a
// per-keyword skip and continue the batch.
func AnalyzeTrend(cfg *contract.Config, series schema.KeywordTrendSeries) (schema.TrendResult, error) {
	n := len(series.Points)
	if n < 2 {
		return schema.TrendResult{}, fmt.Errorf("keyword %q has %d samples: %w", series.Keyword, n, ErrInsufficientData)
	}

	earliest := series.Points[0].Interest
	latest := series.Points[n-1].Interest

	current, err := norm.Normalize(latest, interestSpec)
	if err != nil {
		return schema.TrendResult{}, err
	}

	interests := make([]float64, n)
	for i, p := range series.Points {
		interests[i] = p.Interest
	}
	average, err := norm.Normalize(norm.Mean(interests), interestSpec)
	if err != nil {
		return schema.TrendResult{}, err
	}

	// Growth relative to the earliest sample; the floor of 1 keeps a
	// near-zero start from exploding the percentage.
	growthPct := (latest - earliest) / math.Max(earliest, 1) * 100

	th := cfg.Thresholds
	bonus := momentumBonus(growthPct, th)

	weights := cfg.GetWeights("trend")
	strength := norm.Clamp100(
		current*weights[schema.WeightCurrent] +
			average*weights[schema.WeightAverage] +
			bonus,
	)

	return schema.TrendResult{
		Keyword:        series.Keyword,
		Strength:       strength,
		Current:        current,
		Average:        average,
		GrowthPct:      growthPct,
		Trajectory:     classifyTrajectory(growthPct, th),
		Samples:        n,
		ConfidenceTier: Calibrate(cfg, schema.RuleTrendMomentum, n),
	}, nil
}

// momentumBonus converts growth into a bounded additive bonus. The cap keeps
// a single spike from dominating the composite; negative growth earns no
// bonus rather than a penalty, since the trajectory class already carries the
// downside signal.
func momentumBonus(growthPct float64, th schema.Thresholds) float64 {
	return norm.Clamp(growthPct*th.MomentumScale, 0, th.MomentumCap)
}

// classifyTrajectory applies the trajectory thresholds: growth above the
// rising bound is RISING, growth within the stable band is STABLE, growth
// below the mirrored rising bound is FALLING. Growth strictly between a band
// edge and the rising bound is resolved to the nearest boundary; ties go to
// the milder class.
func classifyTrajectory(growthPct float64, th schema.Thresholds) schema.Trajectory {
	rising := th.RisingGrowthPct
	band := th.StableBandPct

	switch {
	case growthPct > rising:
		return schema.Rising
	case growthPct < -rising:
		return schema.Falling
	case growthPct >= -band && growthPct <= band:
		return schema.Stable
	case growthPct > band:
		// Gray zone (band, rising]: nearest boundary.
		if rising-growthPct < growthPct-band {
			return schema.Rising
		}
		return schema.Stable
	default:
		// Gray zone [-rising, -band): mirrored.
		if growthPct+rising < -band-growthPct {
			return schema.Falling
		}
		return schema.Stable
	}
}
