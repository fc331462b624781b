package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seralva/gapscope/schema"
)

func TestExtractTitlePatterns(t *testing.T) {
	titles := []string{
		"Budget Gaming Setup Tour 2025",
		"My Budget Gaming PC Build",
		"BUDGET GAMING peripherals you need",
		"Standing desk review",
	}
	patterns := ExtractTitlePatterns(titles, 10)
	require.NotEmpty(t, patterns)
	assert.Equal(t, schema.TitlePattern{Pattern: "budget gaming", Count: 3}, patterns[0])

	// Patterns need repetition across titles.
	for _, p := range patterns {
		assert.GreaterOrEqual(t, p.Count, 2)
	}
}

func TestExtractTitlePatternsDeduplicatesWithinTitle(t *testing.T) {
	titles := []string{
		"gaming setup gaming setup gaming setup",
		"gaming setup essentials",
	}
	patterns := ExtractTitlePatterns(titles, 10)
	require.Len(t, patterns, 1)
	assert.Equal(t, 2, patterns[0].Count)
}

func TestExtractTitlePatternsLimit(t *testing.T) {
	titles := []string{
		"alpha beta gamma delta",
		"alpha beta gamma delta",
	}
	patterns := ExtractTitlePatterns(titles, 2)
	assert.Len(t, patterns, 2)
}

func TestCountCoveringTitles(t *testing.T) {
	titles := []string{
		"thermal paste application guide",
		"best budget laptops 2025",
		"how to apply thermal paste",
	}

	tests := []struct {
		name  string
		topic string
		want  int
	}{
		{"exact phrase", "thermal paste", 2},
		{"half token match counts", "thermal paste removal", 2},
		{"single token topic", "laptops", 1},
		{"no match", "mechanical keyboards", 0},
		{"stop words only", "how to the", 0},
		{"empty topic", "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountCoveringTitles(tc.topic, titles))
		})
	}
}

func TestDominantChannels(t *testing.T) {
	records := []schema.CompetitorVideoRecord{
		{VideoID: "a", ChannelID: "chan-big"},
		{VideoID: "b", ChannelID: "chan-big"},
		{VideoID: "c", ChannelID: "chan-big"},
		{VideoID: "d", ChannelID: "chan-mid"},
		{VideoID: "e", ChannelID: "chan-mid"},
		{VideoID: "f", ChannelID: "chan-solo"},
		{VideoID: "g", ChannelID: ""},
	}
	assert.Equal(t, []string{"chan-big", "chan-mid"}, DominantChannels(records))
	assert.Empty(t, DominantChannels(nil))
}
