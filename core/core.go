// Package core implements the gap intelligence scoring pipeline: trend
// momentum, niche saturation, visual pattern correlation, gap scoring and
// confidence calibration over a frozen input bundle.
//
// Every function here is computation-only. No network or storage I/O happens
// inside the pipeline; collaborator layers hand it fully materialized records
// and consume its structured verdicts. A run is a pure function of
// (bundle, config, now), so independent runs are safe to invoke concurrently
// with no shared mutable state.
package core

import "errors"

// Error taxonomy. No condition in this package is fatal to a whole run:
// analyzers convert their own insufficiency into typed skips recorded in the
// report so partial results always survive.
var (
	// ErrInsufficientData means too few samples existed for a given metric.
	// The caller skips that metric and continues the run.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrBelowMinimumSample means a claim failed confidence gating. The claim
	// is downgraded to a diagnostic, never dropped silently and never fatal.
	ErrBelowMinimumSample = errors.New("below minimum sample")
)

// Saturating maxima used to normalize raw domain metrics. Values beyond
// these saturate at 100 rather than skewing the composite.
const (
	maxMedianViews      = 1_000_000.0 // median views beyond this saturate
	maxDistinctChannels = 20.0        // distinct channels beyond this saturate
	maxCompetitorCover  = 10.0        // covering competitor titles beyond this saturate
	maxOwnCoverage      = 5.0         // own videos on a topic beyond this mean full coverage
	maxQuestionRatio    = 0.5         // half the comments being questions is peak demand
	maxUrgencyRatio     = 0.2         // a fifth of comments carrying urgency markers saturates

	// minChannelBaselineSamples is the floor under channel_average_views.
	// Subjects whose baseline rests on fewer uploads are excluded from
	// correlation entirely.
	minChannelBaselineSamples = 5
)
