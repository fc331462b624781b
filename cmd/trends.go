package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/outwriter"
)

// trendsCmd performs keyword-level trend momentum analysis.
var trendsCmd = &cobra.Command{
	Use:   "trends [bundle-path]",
	Short: "Show keywords ranked by trend strength.",
	Long: `Classify every keyword series in the bundle and rank them by trend strength.

Each keyword gets a trajectory (RISING, STABLE, FALLING) from its recent
growth, and a strength score that blends current interest, period average
and a momentum bonus for keywords still climbing.

Series with fewer than two samples are skipped and listed in diagnostics.

Examples:
  # Rank keywords from a collected bundle
  gapscope trends bundle.json --limit 20

  # Re-rank from the cached snapshot of a niche
  gapscope trends --niche "mechanical keyboards"

  # Include growth and sample columns
  gapscope trends bundle.json --detail

  # Export to CSV for tracking
  gapscope trends bundle.json --output csv --output-file trends.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		out, err := runForOutput(cfg, snapshotManager)
		if err != nil {
			contract.LogFatal("Cannot run trend analysis", err)
		}
		trends := out.Trends
		if len(trends) > cfg.ResultLimit {
			trends = trends[:cfg.ResultLimit]
		}
		writer := outwriter.NewOutWriter()
		if err := writer.WriteTrends(trends, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write trend results", err)
		}
	},
}
