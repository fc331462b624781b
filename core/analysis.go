package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// AnalysisOutput bundles every intermediate result of a run so callers can
// render any view of it without recomputation.
type AnalysisOutput struct {
	Report     *schema.Report
	Trends     []schema.TrendResult
	Saturation schema.SaturationResult
	Visual     VisualCorrelation
	Verdicts   []schema.GapVerdict
}

// RunAnalysis executes the full scoring pipeline over a frozen bundle:
// trend momentum, niche saturation, visual pattern correlation, gap scoring
// and report assembly. The run is deterministic: identical (bundle, config)
// inputs produce a byte-identical report, with the analysis clock anchored
// to cfg.Now or, when unset, the bundle's own generation time.
func RunAnalysis(cfg *contract.Config, bundle *schema.AnalysisBundle) (*AnalysisOutput, error) {
	if bundle == nil {
		return nil, errors.New("nil analysis bundle")
	}

	now := cfg.Now
	if now.IsZero() {
		now = bundle.GeneratedAt
	}

	var skips []schema.Skip

	// --- 1. Trend momentum over all keyword series (parallel) ---
	trends, trendSkips := analyzeAllTrends(cfg, bundle.TrendSeries)
	skips = append(skips, trendSkips...)

	// --- 2. Niche saturation over the merged competitor scan ---
	saturation, err := AnalyzeSaturation(cfg, bundle.Niche, bundle.CompetitorVideos, now)
	if err != nil {
		if !errors.Is(err, ErrInsufficientData) {
			return nil, err
		}
		skips = append(skips, schema.Skip{
			Stage:   "niche_saturation",
			Subject: bundle.Niche,
			Reason:  "no competitor videos in bundle",
		})
	}

	// --- 3. Visual pattern correlation ---
	visual, err := CorrelateThumbnails(cfg, bundle.Thumbnails)
	if err != nil && !errors.Is(err, ErrInsufficientData) {
		return nil, err
	}
	skips = append(skips, visual.Skips...)
	if err != nil && len(bundle.Thumbnails) > 0 {
		skips = append(skips, schema.Skip{
			Stage:   "visual_pattern",
			Subject: bundle.Niche,
			Reason:  "no thumbnails with a usable channel baseline",
		})
	}

	// --- 4. Gap scoring ---
	trendIndex := make(map[string]schema.TrendResult, len(trends))
	for _, tr := range trends {
		trendIndex[tr.Keyword] = tr
	}
	verdicts, gapSkips := ScoreGaps(cfg, bundle.Topics, trendIndex,
		TitlesOf(bundle.CompetitorVideos), ChannelTitlesOf(bundle.ChannelVideos))
	skips = append(skips, gapSkips...)

	// --- 5. Report assembly ---
	report := AssembleReport(cfg, bundle, trends, saturation, visual, verdicts, skips)

	return &AnalysisOutput{
		Report:     report,
		Trends:     trends,
		Saturation: saturation,
		Visual:     visual,
		Verdicts:   verdicts,
	}, nil
}

// analyzeAllTrends fans keyword series out over a worker pool, then re-sorts
// results by keyword so pool scheduling never leaks into the output order.
func analyzeAllTrends(cfg *contract.Config, series []schema.KeywordTrendSeries) ([]schema.TrendResult, []schema.Skip) {
	if len(series) == 0 {
		return nil, nil
	}

	type trendOutcome struct {
		result schema.TrendResult
		skip   *schema.Skip
	}

	seriesCh := make(chan schema.KeywordTrendSeries, len(series))
	outcomeCh := make(chan trendOutcome, len(series))
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	for range workers {
		wg.Go(func() {
			for s := range seriesCh {
				result, err := AnalyzeTrend(cfg, s)
				if err != nil {
					outcomeCh <- trendOutcome{skip: &schema.Skip{
						Stage:   "trend_momentum",
						Subject: s.Keyword,
						Reason:  err.Error(),
					}}
					continue
				}
				outcomeCh <- trendOutcome{result: result}
			}
		})
	}

	for _, s := range series {
		seriesCh <- s
	}
	close(seriesCh)

	wg.Wait()
	close(outcomeCh)

	results := make([]schema.TrendResult, 0, len(series))
	skips := make([]schema.Skip, 0)
	for o := range outcomeCh {
		if o.skip != nil {
			skips = append(skips, *o.skip)
			continue
		}
		results = append(results, o.result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Strength != results[j].Strength {
			return results[i].Strength > results[j].Strength
		}
		return results[i].Keyword < results[j].Keyword
	})
	sort.SliceStable(skips, func(i, j int) bool {
		return skips[i].Subject < skips[j].Subject
	})

	return results, skips
}

// ElapsedSince reports a run duration rounded for log lines.
func ElapsedSince(start time.Time) string {
	return fmt.Sprintf("%.2fs", time.Since(start).Seconds())
}
