package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/outwriter"
)

// reportCmd runs the full analysis and assembles the niche report.
var reportCmd = &cobra.Command{
	Use:   "report [bundle-path]",
	Short: "Assemble the full gap intelligence report for a niche.",
	Long: `Run every analyzer over an input bundle and assemble the complete report.

The report combines all analysis stages into one document:
- Market context: niche saturation plus the strongest trending topics
- Competitor intelligence: top videos, recurring title patterns, dominant channels
- Thumbnail analysis: visual patterns that outperform the channel baseline
- Gap verdicts: topics ranked by how underserved they are
- Diagnostics: every signal that was skipped and why

Sections backed by too little data are moved into diagnostics rather than
reported with low-confidence numbers.

Examples:
  # Full report from a freshly collected bundle
  gapscope report bundle.json

  # Re-run from the cached snapshot of a niche
  gapscope report --niche "mechanical keyboards"

  # Include per-verdict component scores
  gapscope report bundle.json --detail --explain

  # Export findings to JSON for downstream tooling
  gapscope report bundle.json --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		out, err := runForOutput(cfg, snapshotManager)
		if err != nil {
			contract.LogFatal("Cannot run report analysis", err)
		}
		writer := outwriter.NewOutWriter()
		if err := writer.WriteReport(out.Report, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
	},
}
