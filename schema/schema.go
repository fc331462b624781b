// Package schema has configs, models and constant tables for all parts of gapscope.
package schema

import "time"

// MetricSample is a single raw metric handed over by a collaborator.
// It is immutable input and the source of all normalization.
type MetricSample struct {
	MetricName string  `json:"metric_name"`
	RawValue   float64 `json:"raw_value"`
	Unit       string  `json:"unit"`
}

// TrendPoint is one sample of search interest for a keyword.
type TrendPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Interest  float64   `json:"interest"` // 0-100 interest score from the trend provider
}

// KeywordTrendSeries is an ordered sequence of interest samples for one keyword
// over a fixed lookback window. Insertion order is chronological order; the
// momentum and recency math depends on it.
type KeywordTrendSeries struct {
	Keyword string       `json:"keyword"`
	Points  []TrendPoint `json:"points"`
}

// CompetitorVideoRecord is one top-search result for a query.
// Records are unique by VideoID within a scan.
type CompetitorVideoRecord struct {
	VideoID      string    `json:"video_id"`
	ChannelID    string    `json:"channel_id"`
	ViewCount    int64     `json:"view_count"`
	PublishedAt  time.Time `json:"published_at"`
	Title        string    `json:"title"`
	ThumbnailRef string    `json:"thumbnail_ref"`
}

// ChannelVideoRecord is one of the subject channel's own uploads,
// used for coverage scoring.
type ChannelVideoRecord struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title"`
	ViewCount   int64     `json:"view_count"`
	PublishedAt time.Time `json:"published_at"`
}

// ColorShare is one dominant color swatch and its share of the image.
type ColorShare struct {
	Hex   string  `json:"hex"`
	Share float64 `json:"share"`
}

// ThumbnailFeatureSet holds features extracted from one thumbnail image.
// Extraction happens in a collaborator pipeline; this record is immutable
// once handed to the engine.
type ThumbnailFeatureSet struct {
	ThumbnailRef     string       `json:"thumbnail_ref"`
	DominantColors   []ColorShare `json:"dominant_colors"` // ordered by share, descending
	FaceCount        int          `json:"face_count"`
	FaceAreaPct      float64      `json:"face_area_pct"`
	FacePosition     FacePosition `json:"face_position"`
	TextDensityScore float64      `json:"text_density_score"` // 0-1 edge-density heuristic
	Brightness       float64      `json:"brightness"`         // 0-255 mean luminance
}

// PerformanceOutcome is the outcome variable correlated against thumbnail
// features. ChannelAverageViews must rest on at least MinChannelBaselineSamples
// uploads of the same channel, or the subject is excluded from correlation.
type PerformanceOutcome struct {
	SubjectID           string  `json:"subject_id"`
	Views               int64   `json:"views"`
	ChannelAverageViews float64 `json:"channel_average_views"`
	ChannelSampleCount  int     `json:"channel_sample_count"`
}

// ThumbnailSample pairs extracted features with the observed outcome.
type ThumbnailSample struct {
	Features ThumbnailFeatureSet `json:"features"`
	Outcome  PerformanceOutcome  `json:"outcome"`
}

// TopicSignals carries the comment-derived demand inputs for one topic.
type TopicSignals struct {
	Topic         string `json:"topic"`
	CommentCount  int    `json:"comment_count"`
	QuestionCount int    `json:"question_count"`
	UrgencyCount  int    `json:"urgency_count"`
	TrendKeyword  string `json:"trend_keyword,omitempty"` // links the topic to a trend series
}

// ScoredMetric is the universal output shape every analyzer produces:
// a 0-100 value, a classification level, and the basis for the number.
type ScoredMetric struct {
	Value float64 `json:"value"`
	Level string  `json:"level"`
	Basis string  `json:"basis"`
}

// TrendResult is the trend momentum analyzer's verdict for one keyword.
type TrendResult struct {
	Keyword        string         `json:"keyword"`
	Strength       float64        `json:"strength"` // 0-100 composite
	Current        float64        `json:"current"`
	Average        float64        `json:"average"`
	GrowthPct      float64        `json:"growth_pct"`
	Trajectory     Trajectory     `json:"trajectory"`
	Samples        int            `json:"samples"`
	ConfidenceTier ConfidenceTier `json:"confidence_tier"`
}

// SaturationResult is the niche saturation analyzer's verdict for a merged
// competitor scan.
type SaturationResult struct {
	Score            float64         `json:"score"` // 0-100 composite
	Level            SaturationLevel `json:"level"`
	ViewVolume       float64         `json:"view_volume_score"`
	ChannelDiversity float64         `json:"channel_diversity_score"`
	Recency          float64         `json:"recency_score"`
	MedianViews      int64           `json:"median_views"`
	DistinctChans    int             `json:"distinct_channels"`
	RecentFraction   float64         `json:"recent_fraction"`
	SampleSize       int             `json:"sample_size"`
	ConfidenceTier   ConfidenceTier  `json:"confidence_tier"`
}

// WinningPattern is a thumbnail feature bucket whose outcomes beat the
// channel baseline. Regenerated on every run; never persisted by the engine.
type WinningPattern struct {
	FeatureName    FeatureName    `json:"feature_name"`
	FeatureValue   string         `json:"feature_value"`
	UpliftPct      float64        `json:"uplift_pct"`
	SampleSize     int            `json:"sample_size"`
	ConfidenceTier ConfidenceTier `json:"confidence_tier"`
}

// GapVerdict is the gap scoring engine's classified verdict for one topic.
type GapVerdict struct {
	Topic              string            `json:"topic"`
	DemandScore        float64           `json:"demand_score"`
	CompetitorGapScore float64           `json:"competitor_gap_score"`
	CoverageScore      float64           `json:"coverage_score"`
	GapScore           float64           `json:"gap_score"`
	Classification     GapClassification `json:"classification"`
	ConfidenceTier     ConfidenceTier    `json:"confidence_tier"`
	SampleSize         int               `json:"sample_size"` // backing comment count
}

// Skip records a per-item insufficiency that was converted into a typed skip
// instead of aborting the run.
type Skip struct {
	Stage   string `json:"stage"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
}

// SnapshotStatus holds status information about a snapshot store.
type SnapshotStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisBundle is the frozen, isolated input for one analysis run.
// The engine is a pure function of a bundle plus configuration; it holds no
// state across runs.
type AnalysisBundle struct {
	Niche            string                  `json:"niche"`
	ChannelID        string                  `json:"channel_id"`
	GeneratedAt      time.Time               `json:"generated_at"`
	TrendSeries      []KeywordTrendSeries    `json:"trend_series"`
	CompetitorVideos []CompetitorVideoRecord `json:"competitor_videos"`
	ChannelVideos    []ChannelVideoRecord    `json:"channel_videos"`
	Thumbnails       []ThumbnailSample       `json:"thumbnails"`
	Topics           []TopicSignals          `json:"topics"`
}
