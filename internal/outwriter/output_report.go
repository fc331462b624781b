package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// WriteReportResults outputs the full analysis report, dispatching based on the output format configured.
func WriteReportResults(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON report")
	case schema.CSVOut:
		// CSV keeps the actionable core of the report: the gap verdicts.
		_, intFmt := createFormatters(cfg.Precision)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGapCSV(w, report.GapVerdicts, fmtFloat, intFmt)
		}, "Wrote CSV report")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(report, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
}

// sectionHeader prints a colored section title, or plain text when colors are off.
func sectionHeader(w io.Writer, title string) {
	heading := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w, heading.Sprint(title))
}

// writeReportText renders the report as a sequence of human-readable sections.
func writeReportText(report *schema.Report, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	// --- 1. Market context ---
	sectionHeader(w, "MARKET CONTEXT")
	fmt.Fprintf(w, "Niche: %s\n", report.MarketContext.Niche)
	fmt.Fprintf(w, "Saturation: %s %s\n",
		fmtFloat(report.MarketContext.SaturationScore), report.MarketContext.SaturationLevel)
	for _, topic := range report.MarketContext.TrendingTopics {
		fmt.Fprintf(w, "  %-10s %s (%s)\n", topic.Trajectory, topic.Keyword, fmtFloat(topic.Strength))
	}
	fmt.Fprintln(w)

	// --- 2. Competitor intelligence ---
	sectionHeader(w, "COMPETITOR INTELLIGENCE")
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Title", "Channel", "Views"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var rows [][]string
	for i, v := range report.CompetitorIntelligence.TopPerformingVideos {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(v.Title, getMaxTableTopicWidth(cfg)),
			v.ChannelID,
			strconv.FormatInt(v.ViewCount, 10),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	for _, p := range report.CompetitorIntelligence.WinningPatterns.CommonTitlePatterns {
		fmt.Fprintf(w, "  title pattern %q seen %d times\n", p.Pattern, p.Count)
	}
	if chans := report.CompetitorIntelligence.WinningPatterns.DominantChannels; len(chans) > 0 {
		fmt.Fprintf(w, "  dominant channels: %v\n", chans)
	}
	fmt.Fprintln(w)

	// --- 3. Thumbnail analysis ---
	sectionHeader(w, "THUMBNAIL ANALYSIS")
	fmt.Fprintf(w, "Analyzed %d thumbnails\n", report.ThumbnailAnalysis.TotalAnalyzed)
	for _, p := range report.ThumbnailAnalysis.WinningPatterns {
		fmt.Fprintf(w, "  [%s] %s\n", contract.TierColorLabel(p.ConfidenceTier), p.Finding)
		fmt.Fprintf(w, "        recommendation: %s\n", p.Recommendation)
	}
	fmt.Fprintln(w)

	// --- 4. Gap verdicts ---
	sectionHeader(w, "GAP VERDICTS")
	if err := writeGapTable(report.GapVerdicts, cfg, fmtFloat, duration, w); err != nil {
		return err
	}
	fmt.Fprintln(w)

	// --- 5. Diagnostics ---
	sectionHeader(w, "DIAGNOSTICS")
	fmt.Fprintf(w, "Skips: %d, insufficient verdicts: %d, insufficient patterns: %d\n",
		len(report.Diagnostics.Skips),
		len(report.Diagnostics.InsufficientVerdicts),
		len(report.Diagnostics.InsufficientPatterns))
	if cfg.Detail {
		for _, s := range report.Diagnostics.Skips {
			fmt.Fprintf(w, "  [%s] %s: %s\n", s.Stage, s.Subject, s.Reason)
		}
	}
	return nil
}
