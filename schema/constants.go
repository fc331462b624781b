package schema

// Custom string types for type safety.
type (
	// Trajectory represents a keyword interest trajectory.
	Trajectory string

	// SaturationLevel represents how contested a niche is.
	SaturationLevel string

	// GapClassification represents a gap verdict class.
	GapClassification string

	// ConfidenceTier represents the calibrated reliability of a claim.
	ConfidenceTier string

	// RuleCategory represents the provenance of a derived claim.
	RuleCategory string

	// FeatureName represents a thumbnail feature used for bucketing.
	FeatureName string

	// FacePosition represents the horizontal placement of the dominant face.
	FacePosition string

	// WeightKey represents keys used in composite weight tables.
	WeightKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the snapshot store.
	DatabaseBackend string
)

// All trajectories supported.
const (
	Rising  Trajectory = "RISING"
	Stable  Trajectory = "STABLE"
	Falling Trajectory = "FALLING"
)

// All saturation levels supported.
const (
	HighSaturation   SaturationLevel = "HIGH"
	MediumSaturation SaturationLevel = "MEDIUM"
	LowSaturation    SaturationLevel = "LOW"
)

// All gap classifications supported.
const (
	TrueGap        GapClassification = "TRUE_GAP"
	UnderExplained GapClassification = "UNDER_EXPLAINED"
	LowPriority    GapClassification = "LOW_PRIORITY"
)

// All confidence tiers supported.
const (
	HighTier         ConfidenceTier = "HIGH"
	MediumTier       ConfidenceTier = "MEDIUM"
	LowTier          ConfidenceTier = "LOW"
	InsufficientTier ConfidenceTier = "INSUFFICIENT"
)

// Rule categories used by the confidence calibrator.
const (
	RuleCommentDemand   RuleCategory = "comment_demand"   // comment questions → demand
	RuleTrendMomentum   RuleCategory = "trend_momentum"   // interest series → trajectory
	RuleNicheSaturation RuleCategory = "niche_saturation" // competitor scan → crowding
	RuleVisualPattern   RuleCategory = "visual_pattern"   // thumbnail bucket → uplift
	RuleGapVerdict      RuleCategory = "gap_verdict"      // combined gap classification
)

// Thumbnail features used for bucketing.
const (
	FaceCountFeature     FeatureName = "face_count"
	DominantColorFeature FeatureName = "dominant_color"
	TextDensityFeature   FeatureName = "text_density"
	BrightnessFeature    FeatureName = "brightness"
	FacePositionFeature  FeatureName = "face_position"
)

// Face positions emitted by the extraction collaborator.
const (
	FaceLeft   FacePosition = "left"
	FaceCenter FacePosition = "center"
	FaceRight  FacePosition = "right"
	FaceNone   FacePosition = "none"
)

// Weight keys used in composite weight tables.
const (
	WeightCurrent   WeightKey = "current"     // trend: latest interest
	WeightAverage   WeightKey = "average"     // trend: series mean
	WeightViews     WeightKey = "view_volume" // saturation: median views
	WeightDiversity WeightKey = "diversity"   // saturation: distinct channels
	WeightRecency   WeightKey = "recency"     // saturation: recent fraction
	WeightQuestions WeightKey = "questions"   // demand: question frequency
	WeightTrend     WeightKey = "trend"       // demand: trend strength
	WeightUrgency   WeightKey = "urgency"     // demand: urgency frequency
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Thresholds holds every classification boundary the engine uses.
// These are research-backed defaults; deployments may override any of them
// through the config file, never by editing literals.
type Thresholds struct {
	RisingGrowthPct float64 // growth above this is RISING
	StableBandPct   float64 // growth within ±band is STABLE

	SaturationHigh float64 // saturation score above this is HIGH
	SaturationLow  float64 // saturation score below this is LOW

	DemandHigh   float64 // demand at or above this counts as high
	DemandLow    float64 // demand below this forces LOW_PRIORITY
	CoverageLow  float64 // coverage below this means no real coverage
	CoverageWeak float64 // coverage below this (but above low) is weak

	MinUpliftPct  float64 // strict lower bound for a winning pattern
	MinBucketSize int     // buckets below this are dropped, never reported

	GapEpsilon    float64 // floor for the coverage divisor
	GapRawCeiling float64 // raw gap value mapped to 100

	MomentumCap   float64 // momentum bonus upper bound
	MomentumScale float64 // growth-to-bonus conversion factor

	RecencyWindowDays int // rolling window for the saturation recency score
}

// DefaultThresholds returns the research-backed default threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RisingGrowthPct:   25,
		StableBandPct:     5,
		SaturationHigh:    70,
		SaturationLow:     40,
		DemandHigh:        60,
		DemandLow:         30,
		CoverageLow:       30,
		CoverageWeak:      55,
		MinUpliftPct:      10,
		MinBucketSize:     5,
		GapEpsilon:        1,
		GapRawCeiling:     1000,
		MomentumCap:       30,
		MomentumScale:     0.3,
		RecencyWindowDays: 90,
	}
}

// GetDefaultWeights returns the default weight map for a given composite.
// Trend weights leave headroom for the additive momentum bonus so the
// composite stays within 0-100 by construction.
func GetDefaultWeights(composite string) map[WeightKey]float64 {
	switch composite {
	case "saturation":
		return map[WeightKey]float64{
			WeightViews:     0.40,
			WeightDiversity: 0.30,
			WeightRecency:   0.30,
		}
	case "demand":
		return map[WeightKey]float64{
			WeightQuestions: 0.50,
			WeightTrend:     0.30,
			WeightUrgency:   0.20,
		}
	default: // "trend"
		return map[WeightKey]float64{
			WeightCurrent: 0.40,
			WeightAverage: 0.30,
		}
	}
}

// ConfidenceRule pairs a rule category's research-backed confidence value
// with the minimum backing sample size below which the claim is INSUFFICIENT.
type ConfidenceRule struct {
	Value      float64 // 0-100 calibrated confidence
	MinSamples int
}

// DefaultConfidenceRules returns the rule-category → confidence table.
// Sample floors follow the research defaults: comment-backed claims need 50
// comments, video-backed claims 20 videos, channel-backed claims 10 channels.
func DefaultConfidenceRules() map[RuleCategory]ConfidenceRule {
	return map[RuleCategory]ConfidenceRule{
		RuleCommentDemand:   {Value: 86, MinSamples: 50},
		RuleTrendMomentum:   {Value: 74, MinSamples: 8},
		RuleNicheSaturation: {Value: 72, MinSamples: 10},
		RuleVisualPattern:   {Value: 78, MinSamples: 20},
		RuleGapVerdict:      {Value: 81, MinSamples: 50},
	}
}

// Confidence tier boundaries.
const (
	HighTierMin   = 85.0
	MediumTierMin = 70.0
	LowTierMin    = 50.0
)

// TierForValue maps a calibrated confidence value to its tier.
func TierForValue(v float64) ConfidenceTier {
	switch {
	case v >= HighTierMin:
		return HighTier
	case v >= MediumTierMin:
		return MediumTier
	case v >= LowTierMin:
		return LowTier
	default:
		return InsufficientTier
	}
}

// StopWords is the fixed function-word table applied before any title
// pattern extraction, so frequency counts reflect topical words.
var StopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "how": {},
	"i": {}, "in": {}, "is": {}, "it": {}, "my": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"was": {}, "what": {}, "when": {}, "where": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}

// PaletteSwatch is one named hue anchor for dominant-color bucketing.
type PaletteSwatch struct {
	Name string
	Hue  float64 // degrees on the HSL wheel
}

// ColorPalette is the fixed palette dominant colors are snapped to.
// Grayscale swatches are resolved by saturation/lightness before hue.
var ColorPalette = []PaletteSwatch{
	{Name: "red", Hue: 0},
	{Name: "orange", Hue: 30},
	{Name: "yellow", Hue: 60},
	{Name: "green", Hue: 120},
	{Name: "cyan", Hue: 180},
	{Name: "blue", Hue: 240},
	{Name: "purple", Hue: 280},
	{Name: "magenta", Hue: 320},
}

// Text density bucket boundaries (0-1 edge-density score).
const (
	TextDensityMedMin  = 0.33
	TextDensityHighMin = 0.66
)

// Brightness bucket boundaries (0-255 mean luminance).
const (
	BrightnessMedMin  = 85.0
	BrightnessHighMin = 170.0
)
