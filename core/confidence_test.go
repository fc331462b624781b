package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seralva/gapscope/schema"
)

func TestCalibrate(t *testing.T) {
	cfg := newTestConfig()

	tests := []struct {
		name       string
		category   schema.RuleCategory
		sampleSize int
		want       schema.ConfidenceTier
	}{
		{"comment demand at floor", schema.RuleCommentDemand, 50, schema.HighTier},
		{"comment demand below floor", schema.RuleCommentDemand, 49, schema.InsufficientTier},
		{"visual pattern at floor", schema.RuleVisualPattern, 20, schema.MediumTier},
		{"visual pattern below floor", schema.RuleVisualPattern, 19, schema.InsufficientTier},
		{"saturation at floor", schema.RuleNicheSaturation, 10, schema.MediumTier},
		{"gap verdict at floor", schema.RuleGapVerdict, 50, schema.MediumTier},
		{"zero samples", schema.RuleTrendMomentum, 0, schema.InsufficientTier},
		{"unknown category", schema.RuleCategory("psychic"), 1000, schema.InsufficientTier},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Calibrate(cfg, tc.category, tc.sampleSize))
		})
	}
}

func TestCalibrateCustomRule(t *testing.T) {
	cfg := newTestConfig()
	cfg.ConfidenceRules[schema.RuleVisualPattern] = schema.ConfidenceRule{Value: 40, MinSamples: 1}

	// A low calibrated value resolves to INSUFFICIENT even with samples.
	assert.Equal(t, schema.InsufficientTier, Calibrate(cfg, schema.RuleVisualPattern, 100))
}
