package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// WriteSaturationResult outputs the niche saturation verdict, dispatching based on the output format configured.
func WriteSaturationResult(result schema.SaturationResult, niche string, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			type JSONSaturationResult struct {
				Niche string `json:"niche"`
				schema.SaturationResult
			}
			return writeJSON(w, JSONSaturationResult{Niche: niche, SaturationResult: result})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSaturationCSV(w, result, niche, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSaturationText(w, result, niche, cfg, fmtFloat)
		}, "Wrote saturation")
	}
}

// writeSaturationText renders a compact human-readable summary.
func writeSaturationText(w io.Writer, result schema.SaturationResult, niche string, cfg *contract.Config, fmtFloat func(float64) string) error {
	fmt.Fprintf(w, "Niche: %s\n", niche)
	fmt.Fprintf(w, "Saturation: %s %s (tier %s)\n",
		fmtFloat(result.Score), result.Level, contract.TierColorLabel(result.ConfidenceTier))
	if cfg.Detail {
		fmt.Fprintf(w, "  view volume:       %s (median %d views)\n", fmtFloat(result.ViewVolume), result.MedianViews)
		fmt.Fprintf(w, "  channel diversity: %s (%d channels)\n", fmtFloat(result.ChannelDiversity), result.DistinctChans)
		fmt.Fprintf(w, "  recency:           %s (%.0f%% recent)\n", fmtFloat(result.Recency), result.RecentFraction*100)
	}
	fmt.Fprintf(w, "Sample size: %d videos\n", result.SampleSize)
	return nil
}

// writeSaturationCSV writes the saturation verdict as a single CSV row.
func writeSaturationCSV(w io.Writer, result schema.SaturationResult, niche string, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"niche",
		"score",
		"level",
		"view_volume",
		"channel_diversity",
		"recency",
		"median_views",
		"distinct_channels",
		"sample_size",
		"confidence_tier",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		rec := []string{
			niche,
			fmtFloat(result.Score),
			string(result.Level),
			fmtFloat(result.ViewVolume),
			fmtFloat(result.ChannelDiversity),
			fmtFloat(result.Recency),
			fmt.Sprintf(intFmt, result.MedianViews),
			fmt.Sprintf(intFmt, result.DistinctChans),
			fmt.Sprintf(intFmt, result.SampleSize),
			string(result.ConfidenceTier),
		}
		return csvWriter.Write(rec)
	})
}
