package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"
	"time"

	"github.com/seralva/gapscope/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ThresholdsRawInput holds threshold overrides from the YAML config file.
// Pointer fields distinguish "unset" from an explicit zero.
type ThresholdsRawInput struct {
	RisingGrowthPct   *float64 `mapstructure:"rising_growth_pct"`
	StableBandPct     *float64 `mapstructure:"stable_band_pct"`
	SaturationHigh    *float64 `mapstructure:"saturation_high"`
	SaturationLow     *float64 `mapstructure:"saturation_low"`
	DemandHigh        *float64 `mapstructure:"demand_high"`
	DemandLow         *float64 `mapstructure:"demand_low"`
	CoverageLow       *float64 `mapstructure:"coverage_low"`
	CoverageWeak      *float64 `mapstructure:"coverage_weak"`
	MinUpliftPct      *float64 `mapstructure:"min_uplift_pct"`
	MinBucketSize     *int     `mapstructure:"min_bucket_size"`
	GapEpsilon        *float64 `mapstructure:"gap_epsilon"`
	GapRawCeiling     *float64 `mapstructure:"gap_raw_ceiling"`
	MomentumCap       *float64 `mapstructure:"momentum_cap"`
	MomentumScale     *float64 `mapstructure:"momentum_scale"`
	RecencyWindowDays *int     `mapstructure:"recency_window_days"`
}

// CompositeWeightsRaw holds custom weights for a single composite.
type CompositeWeightsRaw struct {
	Current    *float64 `mapstructure:"current"`
	Average    *float64 `mapstructure:"average"`
	ViewVolume *float64 `mapstructure:"view_volume"`
	Diversity  *float64 `mapstructure:"diversity"`
	Recency    *float64 `mapstructure:"recency"`
	Questions  *float64 `mapstructure:"questions"`
	Trend      *float64 `mapstructure:"trend"`
	Urgency    *float64 `mapstructure:"urgency"`
}

// WeightsRawInput holds all custom weight definitions from the YAML config file.
type WeightsRawInput struct {
	Trend      *CompositeWeightsRaw `mapstructure:"trend"`
	Saturation *CompositeWeightsRaw `mapstructure:"saturation"`
	Demand     *CompositeWeightsRaw `mapstructure:"demand"`
}

// Config holds the runtime configuration for an analysis run.
// This struct is the "final, validated" config; the engine treats it as
// immutable for the duration of a run.
type Config struct {
	BundlePath string
	Niche      string // overrides the bundle's niche label when set
	Now        time.Time

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Explain     bool
	Width       int // Terminal width override (0 = auto-detect)

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	// Thresholds is the merged classification boundary table
	// (research defaults plus config-file overrides).
	Thresholds schema.Thresholds

	// ComputedWeights is the final weight map for each composite,
	// computed from defaults + custom overrides.
	ComputedWeights map[string]map[schema.WeightKey]float64

	// ConfidenceRules is the rule-category → confidence table.
	ConfidenceRules map[schema.RuleCategory]schema.ConfidenceRule

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	BundlePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Niche             string `mapstructure:"niche"`
	Now               string `mapstructure:"now"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from reportCmd.Flags() ---
	Detail  bool `mapstructure:"detail"`
	Explain bool `mapstructure:"explain"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Threshold overrides from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ComputedWeights != nil {
		clone.ComputedWeights = make(map[string]map[schema.WeightKey]float64)
		for composite, weightMap := range c.ComputedWeights {
			clone.ComputedWeights[composite] = make(map[schema.WeightKey]float64)
			maps.Copy(clone.ComputedWeights[composite], weightMap)
		}
	}
	if c.ConfidenceRules != nil {
		clone.ConfidenceRules = make(map[schema.RuleCategory]schema.ConfidenceRule)
		maps.Copy(clone.ConfidenceRules, c.ConfidenceRules)
	}
	return &clone
}

// GetWeights returns the merged weight map for a composite ("trend",
// "saturation", "demand"), falling back to research defaults when no
// override was configured.
func (c *Config) GetWeights(composite string) map[schema.WeightKey]float64 {
	if c.ComputedWeights != nil {
		if w, ok := c.ComputedWeights[composite]; ok {
			return w
		}
	}
	return schema.GetDefaultWeights(composite)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processNow(cfg, input); err != nil {
		return err
	}
	processThresholds(cfg, input)
	processCustomWeights(cfg, input)
	cfg.ConfidenceRules = schema.DefaultConfidenceRules()
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.BundlePath = input.BundlePathStr
	cfg.Niche = input.Niche
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 4. Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}

	return nil
}

// processNow parses the explicit analysis timestamp. An empty value leaves
// cfg.Now zero; the engine then anchors recency math to the bundle's
// GeneratedAt so reruns over a frozen bundle stay byte-identical.
func processNow(cfg *Config, input *ConfigRawInput) error {
	if input.Now == "" {
		cfg.Now = time.Time{}
		return nil
	}
	t, err := time.Parse(DateTimeFormat, input.Now)
	if err != nil {
		return fmt.Errorf("invalid --now value '%s'. Expected ISO8601: %w", input.Now, err)
	}
	cfg.Now = t
	return nil
}

// processThresholds merges config-file threshold overrides onto the defaults.
func processThresholds(cfg *Config, input *ConfigRawInput) {
	th := schema.DefaultThresholds()
	raw := input.Thresholds

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&th.RisingGrowthPct, raw.RisingGrowthPct)
	setF(&th.StableBandPct, raw.StableBandPct)
	setF(&th.SaturationHigh, raw.SaturationHigh)
	setF(&th.SaturationLow, raw.SaturationLow)
	setF(&th.DemandHigh, raw.DemandHigh)
	setF(&th.DemandLow, raw.DemandLow)
	setF(&th.CoverageLow, raw.CoverageLow)
	setF(&th.CoverageWeak, raw.CoverageWeak)
	setF(&th.MinUpliftPct, raw.MinUpliftPct)
	setI(&th.MinBucketSize, raw.MinBucketSize)
	setF(&th.GapEpsilon, raw.GapEpsilon)
	setF(&th.GapRawCeiling, raw.GapRawCeiling)
	setF(&th.MomentumCap, raw.MomentumCap)
	setF(&th.MomentumScale, raw.MomentumScale)
	setI(&th.RecencyWindowDays, raw.RecencyWindowDays)

	cfg.Thresholds = th
}

// processCustomWeights merges config-file weight overrides onto the defaults.
func processCustomWeights(cfg *Config, input *ConfigRawInput) {
	cfg.ComputedWeights = make(map[string]map[schema.WeightKey]float64)
	for _, composite := range []string{"trend", "saturation", "demand"} {
		weights := make(map[schema.WeightKey]float64)
		maps.Copy(weights, schema.GetDefaultWeights(composite))
		cfg.ComputedWeights[composite] = weights
	}

	apply := func(composite string, raw *CompositeWeightsRaw) {
		if raw == nil {
			return
		}
		weights := cfg.ComputedWeights[composite]
		pairs := []struct {
			key schema.WeightKey
			val *float64
		}{
			{schema.WeightCurrent, raw.Current},
			{schema.WeightAverage, raw.Average},
			{schema.WeightViews, raw.ViewVolume},
			{schema.WeightDiversity, raw.Diversity},
			{schema.WeightRecency, raw.Recency},
			{schema.WeightQuestions, raw.Questions},
			{schema.WeightTrend, raw.Trend},
			{schema.WeightUrgency, raw.Urgency},
		}
		for _, p := range pairs {
			if p.val != nil {
				weights[p.key] = *p.val
			}
		}
	}

	apply("trend", input.Weights.Trend)
	apply("saturation", input.Weights.Saturation)
	apply("demand", input.Weights.Demand)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
