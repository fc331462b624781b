package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/seralva/gapscope/core"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// WritePatternResults outputs winning thumbnail patterns, dispatching based on the output format configured.
func WritePatternResults(visual core.VisualCorrelation, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichPatterns(visual.Patterns))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePatternCSV(w, visual.Patterns, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePatternTable(visual, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writePatternTable generates and writes the human-readable table.
func writePatternTable(visual core.VisualCorrelation, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Feature", "Value", "Uplift%", "Samples", "Tier"})

	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, p := range visual.Patterns {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			string(p.FeatureName),
			p.FeatureValue,
			fmtFloat(p.UpliftPct),
			fmt.Sprintf(intFmt, p.SampleSize),
			contract.TierColorLabel(p.ConfidenceTier),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d winning patterns from %d analyzed thumbnails (%d excluded)\n",
		len(visual.Patterns), visual.TotalAnalyzed, len(visual.Skips)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writePatternCSV writes winning patterns in CSV format.
func writePatternCSV(w io.Writer, patterns []schema.WinningPattern, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"feature",
		"value",
		"uplift_pct",
		"sample_size",
		"confidence_tier",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, p := range patterns {
			rec := []string{
				strconv.Itoa(i + 1),
				string(p.FeatureName),
				p.FeatureValue,
				fmtFloat(p.UpliftPct),
				fmt.Sprintf(intFmt, p.SampleSize),
				string(p.ConfidenceTier),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
