// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/seralva/gapscope/core"
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a full analysis report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResults(report, cfg, duration)
}

// WriteTrends prints trend momentum results using the configured output format.
func (ow *OutWriter) WriteTrends(trends []schema.TrendResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTrendResults(trends, cfg, duration)
}

// WriteSaturation prints niche saturation results using the configured output format.
func (ow *OutWriter) WriteSaturation(result schema.SaturationResult, niche string, cfg *contract.Config) error {
	return WriteSaturationResult(result, niche, cfg)
}

// WriteGaps prints gap verdicts using the configured output format.
func (ow *OutWriter) WriteGaps(verdicts []schema.GapVerdict, cfg *contract.Config, duration time.Duration) error {
	return WriteGapResults(verdicts, cfg, duration)
}

// WritePatterns prints winning thumbnail patterns using the configured output format.
func (ow *OutWriter) WritePatterns(visual core.VisualCorrelation, cfg *contract.Config, duration time.Duration) error {
	return WritePatternResults(visual, cfg, duration)
}

// getMaxTableTopicWidth calculates the maximum width for topic and keyword
// text in table output based on terminal width and table configuration.
func getMaxTableTopicWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + Score + Class + Tier with borders/padding

	if cfg.Detail {
		baseWidth += 35 // Component score columns with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable topic width
		return 15
	}
	if available > 60 {
		// Maximum topic width to prevent overly long cells
		return 60
	}
	return available
}
