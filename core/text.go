package core

import (
	"sort"
	"strings"

	"github.com/seralva/gapscope/schema"
)

// ExtractTitlePatterns finds the most frequent topical bigrams across a set
// of titles. Stop words are removed before pairing, so the counts reflect
// topical words rather than function words. Ordering is deterministic:
// count descending, then pattern ascending.
func ExtractTitlePatterns(titles []string, limit int) []schema.TitlePattern {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, title := range titles {
		tokens := schema.Tokenize(title)
		seen := make(map[string]struct{}) // count each bigram once per title
		for i := 0; i+1 < len(tokens); i++ {
			bigram := tokens[i] + " " + tokens[i+1]
			if _, dup := seen[bigram]; dup {
				continue
			}
			seen[bigram] = struct{}{}
			if counts[bigram] == 0 {
				order = append(order, bigram)
			}
			counts[bigram]++
		}
	}

	patterns := make([]schema.TitlePattern, 0, len(order))
	for _, bigram := range order {
		if counts[bigram] < 2 {
			continue // a pattern needs repetition
		}
		patterns = append(patterns, schema.TitlePattern{Pattern: bigram, Count: counts[bigram]})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		return patterns[i].Pattern < patterns[j].Pattern
	})

	if len(patterns) > limit {
		patterns = patterns[:limit]
	}
	return patterns
}

// CountCoveringTitles returns how many titles cover the topic. A title
// covers a topic when it contains at least half of the topic's topical
// tokens (rounded up), so multi-word topics are not defeated by rephrasing.
func CountCoveringTitles(topic string, titles []string) int {
	topicTokens := schema.Tokenize(topic)
	if len(topicTokens) == 0 {
		return 0
	}
	needed := (len(topicTokens) + 1) / 2

	count := 0
	for _, title := range titles {
		titleTokens := schema.Tokenize(title)
		tokenSet := make(map[string]struct{}, len(titleTokens))
		for _, tok := range titleTokens {
			tokenSet[tok] = struct{}{}
		}

		matched := 0
		for _, tok := range topicTokens {
			if _, ok := tokenSet[tok]; ok {
				matched++
			}
		}
		if matched >= needed {
			count++
		}
	}
	return count
}

// DominantChannels returns channel IDs holding more than one spot in the
// merged competitor set, ordered by spot count descending then ID ascending.
func DominantChannels(records []schema.CompetitorVideoRecord) []string {
	counts := make(map[string]int)
	for _, r := range records {
		if r.ChannelID == "" {
			continue
		}
		counts[r.ChannelID]++
	}

	channels := make([]string, 0, len(counts))
	for id, n := range counts {
		if n >= 2 {
			channels = append(channels, id)
		}
	}
	sort.Slice(channels, func(i, j int) bool {
		if counts[channels[i]] != counts[channels[j]] {
			return counts[channels[i]] > counts[channels[j]]
		}
		return strings.Compare(channels[i], channels[j]) < 0
	})
	return channels
}
