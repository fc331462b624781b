package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/outwriter"
)

// saturationCmd measures how crowded a niche currently is.
var saturationCmd = &cobra.Command{
	Use:   "saturation [bundle-path]",
	Short: "Measure how crowded the niche is.",
	Long: `Score niche saturation from the competitor videos in the bundle.

The score blends three components:
- View volume: median views across distinct competitor videos
- Channel diversity: how many distinct channels compete in the niche
- Recency: the fraction of videos published inside the recency window

High saturation means the niche is crowded with active channels; low
saturation with real demand is where gaps live.

Examples:
  # Score saturation from a collected bundle
  gapscope saturation bundle.json

  # Include component scores
  gapscope saturation bundle.json --detail

  # Machine-readable output
  gapscope saturation bundle.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		out, err := runForOutput(cfg, snapshotManager)
		if err != nil {
			contract.LogFatal("Cannot run saturation analysis", err)
		}
		writer := outwriter.NewOutWriter()
		if err := writer.WriteSaturation(out.Saturation, out.Report.MarketContext.Niche, cfg); err != nil {
			contract.LogFatal("Cannot write saturation result", err)
		}
	},
}
