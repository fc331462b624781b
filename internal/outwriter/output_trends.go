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

// WriteTrendResults outputs trend momentum results, dispatching based on the output format configured.
func WriteTrendResults(trends []schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendJSON(w, trends)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, trends, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(trends, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeTrendTable generates and writes the human-readable table.
func writeTrendTable(trends []schema.TrendResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Keyword", "Strength", "Trajectory", "Tier"}
	if cfg.Detail {
		headers = append(headers, "Current", "Average", "Growth%", "Samples")
	}
	table.Header(headers)

	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, tr := range trends {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(tr.Keyword, getMaxTableTopicWidth(cfg)),
			fmtFloat(tr.Strength),
			string(tr.Trajectory),
			contract.TierColorLabel(tr.ConfidenceTier),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(tr.Current),
				fmtFloat(tr.Average),
				fmtFloat(tr.GrowthPct),
				fmt.Sprintf(intFmt, tr.Samples),
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

	rising := 0
	for _, tr := range trends {
		if tr.Trajectory == schema.Rising {
			rising++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d keywords (%d rising)\n", len(trends), rising); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeTrendCSV writes trend results in CSV format.
func writeTrendCSV(w io.Writer, trends []schema.TrendResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"keyword",
		"strength",
		"trajectory",
		"confidence_tier",
		"current",
		"average",
		"growth_pct",
		"samples",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, tr := range trends {
			rec := []string{
				strconv.Itoa(i + 1),
				tr.Keyword,
				fmtFloat(tr.Strength),
				string(tr.Trajectory),
				string(tr.ConfidenceTier),
				fmtFloat(tr.Current),
				fmtFloat(tr.Average),
				fmtFloat(tr.GrowthPct),
				fmt.Sprintf(intFmt, tr.Samples),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeTrendJSON writes trend results in JSON format.
func writeTrendJSON(w io.Writer, trends []schema.TrendResult) error {
	type JSONTrendResult struct {
		Rank int `json:"rank"`
		schema.TrendResult
	}

	output := make([]JSONTrendResult, len(trends))
	for i, tr := range trends {
		output[i] = JSONTrendResult{Rank: i + 1, TrendResult: tr}
	}
	return writeJSON(w, output)
}
