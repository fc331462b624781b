package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTokenize verifies stop-word filtering and punctuation stripping.
func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected []string
	}{
		{
			name:     "stop words removed",
			title:    "How to Grow a Sourdough Starter",
			expected: []string{"grow", "sourdough", "starter"},
		},
		{
			name:     "punctuation stripped",
			title:    "Sourdough: The ULTIMATE Guide!",
			expected: []string{"sourdough", "ultimate", "guide"},
		},
		{
			name:     "numbers kept",
			title:    "5 Mistakes in 2024",
			expected: []string{"5", "mistakes", "2024"},
		},
		{
			name:     "all stop words",
			title:    "How To Be You",
			expected: []string{},
		},
		{
			name:     "empty title",
			title:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, Tokenize(tt.title))
		})
	}
}

// TestTierForValue checks the tier boundaries.
func TestTierForValue(t *testing.T) {
	tests := []struct {
		value    float64
		expected ConfidenceTier
	}{
		{100, HighTier},
		{85, HighTier},
		{84.9, MediumTier},
		{70, MediumTier},
		{69.9, LowTier},
		{50, LowTier},
		{49.9, InsufficientTier},
		{0, InsufficientTier},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TierForValue(tt.value), "value %v", tt.value)
	}
}

// TestGetDefaultWeights ensures every composite's weights leave the result in 0-100.
func TestGetDefaultWeights(t *testing.T) {
	for _, composite := range []string{"trend", "saturation", "demand"} {
		weights := GetDefaultWeights(composite)
		assert.NotEmpty(t, weights, composite)

		var sum float64
		for _, w := range weights {
			assert.Greater(t, w, 0.0)
			sum += w
		}
		assert.LessOrEqual(t, sum, 1.0, composite)
	}

	// Trend weights plus the momentum cap must not exceed 100.
	trend := GetDefaultWeights("trend")
	th := DefaultThresholds()
	assert.LessOrEqual(t, (trend[WeightCurrent]+trend[WeightAverage])*100+th.MomentumCap, 100.0)
}

// TestDefaultConfidenceRules checks the documented sample floors.
func TestDefaultConfidenceRules(t *testing.T) {
	rules := DefaultConfidenceRules()

	assert.Equal(t, 50, rules[RuleCommentDemand].MinSamples)
	assert.Equal(t, 20, rules[RuleVisualPattern].MinSamples)
	assert.Equal(t, 10, rules[RuleNicheSaturation].MinSamples)

	for category, rule := range rules {
		assert.GreaterOrEqual(t, rule.Value, 0.0, category)
		assert.LessOrEqual(t, rule.Value, 100.0, category)
	}
}
