package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// WriteGapResults outputs gap verdicts, dispatching based on the output format configured.
func WriteGapResults(verdicts []schema.GapVerdict, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichVerdicts(verdicts))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGapCSV(w, verdicts, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGapTable(verdicts, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeGapTable generates and writes the human-readable table.
func writeGapTable(verdicts []schema.GapVerdict, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Topic", "Gap", "Class", "Tier"}
	if cfg.Detail {
		headers = append(headers, "Demand", "CompGap", "Coverage")
	}
	table.Header(headers)

	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, v := range verdicts {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(v.Topic, getMaxTableTopicWidth(cfg)),
			contract.GetColorLabel(v.GapScore) + " " + fmtFloat(v.GapScore),
			string(v.Classification),
			contract.TierColorLabel(v.ConfidenceTier),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(v.DemandScore),
				fmtFloat(v.CompetitorGapScore),
				fmtFloat(v.CoverageScore),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	trueGaps := 0
	for _, v := range verdicts {
		if v.Classification == schema.TrueGap {
			trueGaps++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d topics (%d true gaps)\n", len(verdicts), trueGaps); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeGapCSV writes gap verdicts in CSV format.
func writeGapCSV(w io.Writer, verdicts []schema.GapVerdict, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"topic",
		"gap_score",
		"classification",
		"confidence_tier",
		"demand_score",
		"competitor_gap_score",
		"coverage_score",
		"sample_size",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, v := range verdicts {
			rec := []string{
				strconv.Itoa(i + 1),
				v.Topic,
				fmtFloat(v.GapScore),
				string(v.Classification),
				string(v.ConfidenceTier),
				fmtFloat(v.DemandScore),
				fmtFloat(v.CompetitorGapScore),
				fmtFloat(v.CoverageScore),
				fmt.Sprintf(intFmt, v.SampleSize),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
