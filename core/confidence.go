package core

import (
	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/schema"
)

// Calibrate resolves the confidence tier for a claim from its originating
// rule category and backing sample size. The tier comes from the fixed
// rule-category table; a sample size below the category's documented minimum
// forces INSUFFICIENT regardless of the table value.
//
// This is the only place tiers are assigned. Analyzers never embed ad hoc
// confidence judgments.
func Calibrate(cfg *contract.Config, category schema.RuleCategory, sampleSize int) schema.ConfidenceTier {
	rule, ok := cfg.ConfidenceRules[category]
	if !ok {
		// Unknown provenance cannot be trusted at any sample size.
		return schema.InsufficientTier
	}
	if sampleSize < rule.MinSamples {
		return schema.InsufficientTier
	}
	return schema.TierForValue(rule.Value)
}
