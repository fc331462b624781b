package schema

import (
	"strings"
	"unicode"
)

// Tokenize lowercases a title, strips punctuation and drops stop words.
// The surviving tokens are the topical words used by pattern extraction
// and coverage matching.
func Tokenize(title string) []string {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := StopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// EnrichedVerdict adds presentation data to a GapVerdict.
type EnrichedVerdict struct {
	Rank int `json:"rank"`
	GapVerdict
}

// EnrichVerdicts adds rank to a list of gap verdicts.
func EnrichVerdicts(verdicts []GapVerdict) []EnrichedVerdict {
	output := make([]EnrichedVerdict, len(verdicts))
	for i, v := range verdicts {
		output[i] = EnrichedVerdict{
			Rank:       i + 1,
			GapVerdict: v,
		}
	}
	return output
}

// EnrichedPattern adds presentation data to a WinningPattern.
type EnrichedPattern struct {
	Rank int `json:"rank"`
	WinningPattern
}

// EnrichPatterns adds rank to a list of winning patterns.
func EnrichPatterns(patterns []WinningPattern) []EnrichedPattern {
	output := make([]EnrichedPattern, len(patterns))
	for i, p := range patterns {
		output[i] = EnrichedPattern{
			Rank:           i + 1,
			WinningPattern: p,
		}
	}
	return output
}
