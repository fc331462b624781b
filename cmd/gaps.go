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

// gapsCmd scores and classifies content gaps.
var gapsCmd = &cobra.Command{
	Use:   "gaps [bundle-path]",
	Short: "Show topics ranked by gap score.",
	Long: `Score every topic in the bundle and classify its content gap.

The gap score blends three components:
- Demand: audience questions, trend momentum and urgency signals
- Competitor gap: how few competitor videos already cover the topic
- Coverage: how well your own uploads already serve it

Classifications:
  TRUE_GAP        high demand, nearly no own coverage
  UNDER_EXPLAINED high demand, weak own coverage
  LOW_PRIORITY    everything else

Topics without audience comments are skipped and listed in diagnostics.

Examples:
  # Rank gaps from a collected bundle
  gapscope gaps bundle.json --limit 20

  # Include per-topic component scores
  gapscope gaps bundle.json --detail

  # Export verdicts to Parquet for warehouse ingestion
  gapscope gaps bundle.json --output parquet --output-file verdicts`,
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
			contract.LogFatal("Cannot run gap analysis", err)
		}

		verdicts := out.Verdicts
		if len(verdicts) > cfg.ResultLimit {
			verdicts = verdicts[:cfg.ResultLimit]
		}

		if cfg.Output == schema.ParquetOut {
			if err := exportVerdictsParquet(bundle, verdicts); err != nil {
				contract.LogFatal("Cannot export verdicts", err)
			}
			return
		}

		writer := outwriter.NewOutWriter()
		if err := writer.WriteGaps(verdicts, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write gap results", err)
		}
	},
}

// exportVerdictsParquet writes gap verdicts to a Parquet file.
func exportVerdictsParquet(bundle *schema.AnalysisBundle, verdicts []schema.GapVerdict) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}
	start := time.Now()
	rows := parquet.ConvertGapVerdicts(bundle.Niche, bundle.GeneratedAt, verdicts)
	outFile := cfg.OutputFile + ".gap_verdicts.parquet"
	if err := parquet.WriteGapVerdictsParquet(rows, outFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d gap verdicts to %s in %s\n", len(rows), outFile, core.ElapsedSince(start))
	return nil
}
