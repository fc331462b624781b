package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seralva/gapscope/core"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/outwriter"
	"github.com/seralva/gapscope/internal/parquet"
	"github.com/seralva/gapscope/schema"
)

// patternsCmd correlates thumbnail features against video performance.
var patternsCmd = &cobra.Command{
	Use:   "patterns [bundle-path]",
	Short: "Show thumbnail patterns that outperform the channel baseline.",
	Long: `Correlate thumbnail features against view performance and report the winners.

Thumbnails are bucketed by feature (face count, dominant color, text
density, brightness, face position) and each bucket's average views are
compared against the per-channel baseline. Buckets with too few samples
are dropped; only uplifts above the minimum threshold are reported.

Samples from channels with thin history are excluded from the baseline
and listed in diagnostics.

Examples:
  # Find winning patterns from a collected bundle
  gapscope patterns bundle.json

  # Re-run from the cached snapshot of a niche
  gapscope patterns --niche "mechanical keyboards"

  # Export patterns to Parquet for warehouse ingestion
  gapscope patterns bundle.json --output parquet --output-file patterns`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		bundle, err := loadBundleForRun(cfg, snapshotManager)
		if err != nil {
			contract.LogFatal("Cannot load bundle", err)
		}
		out, err := core.RunAnalysis(cfg, bundle)
		if err != nil {
			contract.LogFatal("Cannot run pattern analysis", err)
		}

		if cfg.Output == schema.ParquetOut {
			if err := exportPatternsParquet(bundle, out); err != nil {
				contract.LogFatal("Cannot export patterns", err)
			}
			return
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WritePatterns(out.Visual, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write pattern results", err)
		}
	},
}

// exportPatternsParquet writes winning patterns to a Parquet file.
func exportPatternsParquet(bundle *schema.AnalysisBundle, out *core.AnalysisOutput) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	start := time.Now()
	rows := parquet.ConvertWinningPatterns(bundle.Niche, bundle.GeneratedAt, out.Visual.Patterns)
	outFile := cfg.OutputFile + ".winning_patterns.parquet"
	if err := parquet.WriteWinningPatternsParquet(rows, outFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d winning patterns to %s in %s\n", len(rows), outFile, core.ElapsedSince(start))
	return nil
}
