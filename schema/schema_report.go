package schema

// Report is the single structured output of an analysis run. It is a pure
// data contract; transport and persistence are external concerns.
type Report struct {
	MarketContext          MarketContext          `json:"market_context"`
	CompetitorIntelligence CompetitorIntelligence `json:"competitor_intelligence"`
	ThumbnailAnalysis      ThumbnailAnalysis      `json:"thumbnail_analysis"`
	GapVerdicts            []GapVerdict           `json:"gap_verdicts"`
	Diagnostics            Diagnostics            `json:"diagnostics"`
}

// TrendingTopic is one keyword with its classified trajectory.
type TrendingTopic struct {
	Keyword    string     `json:"keyword"`
	Trajectory Trajectory `json:"trajectory"`
	Strength   float64    `json:"strength"`
}

// MarketContext summarizes the niche's demand and crowding.
type MarketContext struct {
	Niche           string          `json:"niche"`
	SaturationScore float64         `json:"saturation_score"`
	SaturationLevel SaturationLevel `json:"saturation_level"`
	TrendingTopics  []TrendingTopic `json:"trending_topics"`
}

// TopVideo is one competitor video ranked by view count.
type TopVideo struct {
	VideoID   string `json:"video_id"`
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
	ViewCount int64  `json:"view_count"`
}

// TitlePattern is a recurring topical bigram in competitor titles.
type TitlePattern struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// CompetitorPatterns groups the recurring signals in the competitor set.
type CompetitorPatterns struct {
	CommonTitlePatterns []TitlePattern `json:"common_title_patterns"`
	DominantChannels    []string       `json:"dominant_channels"`
}

// CompetitorIntelligence summarizes the competitor scan.
type CompetitorIntelligence struct {
	TopPerformingVideos []TopVideo         `json:"top_performing_videos"`
	WinningPatterns     CompetitorPatterns `json:"winning_patterns"`
}

// PatternFinding is a winning thumbnail pattern phrased for the report.
type PatternFinding struct {
	Type           FeatureName    `json:"type"`
	Finding        string         `json:"finding"`
	ImpactPct      float64        `json:"impact"`
	Recommendation string         `json:"recommendation"`
	SampleSize     int            `json:"sample_size"`
	ConfidenceTier ConfidenceTier `json:"confidence_tier"`
}

// ThumbnailAnalysis summarizes the visual pattern correlation results.
type ThumbnailAnalysis struct {
	TotalAnalyzed   int              `json:"total_analyzed"`
	WinningPatterns []PatternFinding `json:"winning_patterns"`
}

// Diagnostics carries everything that did not qualify as a recommendation:
// typed skips and claims whose confidence tier resolved to INSUFFICIENT.
// Entries here are informational and must never be mixed into the primary
// recommendation lists.
type Diagnostics struct {
	Skips                []Skip           `json:"skips"`
	InsufficientVerdicts []GapVerdict     `json:"insufficient_verdicts,omitempty"`
	InsufficientPatterns []WinningPattern `json:"insufficient_patterns,omitempty"`
}
