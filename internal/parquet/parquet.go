// Package parquet provides data structures and functions for exporting gap
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/seralva/gapscope/schema"
)

// GapVerdictRow represents one classified gap verdict in columnar form.
type GapVerdictRow struct {
	// Niche is the niche the verdict was computed for
	Niche string `parquet:"niche,snappy"`

	// GeneratedAt is the bundle generation time the verdict derives from
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Topic is the comment-derived topic under evaluation
	Topic string `parquet:"topic,snappy"`

	// DemandScore is the 0-100 blended demand figure
	DemandScore float64 `parquet:"demand_score,snappy"`

	// CompetitorGapScore is the 0-100 inverted competitor coverage figure
	CompetitorGapScore float64 `parquet:"competitor_gap_score,snappy"`

	// CoverageScore is the 0-100 own-channel coverage figure
	CoverageScore float64 `parquet:"coverage_score,snappy"`

	// GapScore is the 0-100 combined opportunity score
	GapScore float64 `parquet:"gap_score,snappy"`

	// Classification is the verdict class (TRUE_GAP, UNDER_EXPLAINED, LOW_PRIORITY)
	Classification string `parquet:"classification,snappy"`

	// ConfidenceTier is the calibrated reliability tier
	ConfidenceTier string `parquet:"confidence_tier,snappy"`

	// SampleSize is the backing comment count
	SampleSize int32 `parquet:"sample_size,snappy"`
}

// WinningPatternRow represents one winning thumbnail pattern in columnar form.
type WinningPatternRow struct {
	// Niche is the niche the pattern was observed in
	Niche string `parquet:"niche,snappy"`

	// GeneratedAt is the bundle generation time the pattern derives from
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// FeatureName is the bucketed thumbnail feature
	FeatureName string `parquet:"feature_name,snappy"`

	// FeatureValue is the winning bucket value
	FeatureValue string `parquet:"feature_value,snappy"`

	// UpliftPct is the bucket's mean-views uplift over the channel baseline
	UpliftPct float64 `parquet:"uplift_pct,snappy"`

	// SampleSize is the number of thumbnails in the bucket
	SampleSize int32 `parquet:"sample_size,snappy"`

	// ConfidenceTier is the calibrated reliability tier
	ConfidenceTier string `parquet:"confidence_tier,snappy"`
}

// WriteGapVerdictsParquet writes a slice of GapVerdictRow structs to a Parquet file.
func WriteGapVerdictsParquet(data []GapVerdictRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the GapVerdictRow struct tags
	writer := parquet.NewGenericWriter[GapVerdictRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteWinningPatternsParquet writes a slice of WinningPatternRow structs to a Parquet file.
func WriteWinningPatternsParquet(data []WinningPatternRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the WinningPatternRow struct tags
	writer := parquet.NewGenericWriter[WinningPatternRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertGapVerdicts converts schema.GapVerdict values to GapVerdictRow for Parquet export.
func ConvertGapVerdicts(niche string, generatedAt time.Time, verdicts []schema.GapVerdict) []GapVerdictRow {
	result := make([]GapVerdictRow, len(verdicts))
	for i, v := range verdicts {
		result[i] = GapVerdictRow{
			Niche:              niche,
			GeneratedAt:        generatedAt,
			Topic:              v.Topic,
			DemandScore:        v.DemandScore,
			CompetitorGapScore: v.CompetitorGapScore,
			CoverageScore:      v.CoverageScore,
			GapScore:           v.GapScore,
			Classification:     string(v.Classification),
			ConfidenceTier:     string(v.ConfidenceTier),
			SampleSize:         int32(v.SampleSize),
		}
	}
	return result
}

// ConvertWinningPatterns converts schema.WinningPattern values to WinningPatternRow for Parquet export.
func ConvertWinningPatterns(niche string, generatedAt time.Time, patterns []schema.WinningPattern) []WinningPatternRow {
	result := make([]WinningPatternRow, len(patterns))
	for i, p := range patterns {
		result[i] = WinningPatternRow{
			Niche:          niche,
			GeneratedAt:    generatedAt,
			FeatureName:    string(p.FeatureName),
			FeatureValue:   p.FeatureValue,
			UpliftPct:      p.UpliftPct,
			SampleSize:     int32(p.SampleSize),
			ConfidenceTier: string(p.ConfidenceTier),
		}
	}
	return result
}
