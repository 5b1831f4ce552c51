package contract

import (
	"fmt"
	"strings"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/schema"
)

// Default values for configuration.
const (
	DefaultMinGroupSize       = 10  // Intersectional groups below this are discarded
	DefaultMaxCombinationSize = 3   // Largest sensitive-attribute combination
	DefaultPSIBins            = 10  // Equal-frequency baseline bins for PSI
	DefaultSampleSize         = 100 // Rows sampled per frame for attribution
	DefaultTopK               = 3   // Features named in root-cause summaries
	DefaultScorePenalty       = 20  // Score deduction per failed metric
	DefaultSeed               = 42  // Sampling seed
	DefaultPrecision          = 2
	MaxCombinationLimit       = 6
	MaxPrecision              = 4
)

// Thresholds holds the statistical cutoffs for drift and fairness verdicts.
type Thresholds struct {
	PSIMinor        float64 // PSI above this is at least minor drift
	PSIMajor        float64 // PSI above this is major drift
	PValue          float64 // Significance level for KS and chi-square
	DisparateImpact float64 // Four-fifths rule floor for min/max rate ratios
	ParityDiff      float64 // Max allowed demographic parity difference
	EqOddsDiff      float64 // Max allowed equalized odds difference
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PSIMinor:        0.1,
		PSIMajor:        0.25,
		PValue:          0.05,
		DisparateImpact: 0.8,
		ParityDiff:      0.1,
		EqOddsDiff:      0.1,
	}
}

// Config holds the runtime configuration for analysis.
// This struct remains the "final, validated" config.
type Config struct {
	// Analysis options
	MinGroupSize       int
	MaxCombinationSize int
	PSIBins            int
	SampleSize         int
	TopK               int
	Seed               int64
	ScorePenalty       int
	WindowSize         int // Observations per analysis window (0 = all)
	Thresholds         Thresholds

	// Dataset selection
	BaselinePath        string
	CurrentPath         string
	DataPath            string
	ModelPath           string
	SensitiveAttrs      []string
	PredictionColumn    string
	LabelColumn         string
	NumericalFeatures   []string
	CategoricalFeatures []string

	// Output
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// Observation store
	StoreBackend schema.DatabaseBackend
	StoreConnect string // Please use env var as this is plaintext
}

// DefaultConfig returns a validated config populated with defaults, for
// library callers that bypass the CLI.
func DefaultConfig() *Config {
	return &Config{
		MinGroupSize:       DefaultMinGroupSize,
		MaxCombinationSize: DefaultMaxCombinationSize,
		PSIBins:            DefaultPSIBins,
		SampleSize:         DefaultSampleSize,
		TopK:               DefaultTopK,
		Seed:               DefaultSeed,
		ScorePenalty:       DefaultScorePenalty,
		Thresholds:         DefaultThresholds(),
		Output:             schema.TextOut,
		Precision:          DefaultPrecision,
		UseColors:          true,
		StoreBackend:       schema.MemoryBackend,
	}
}

// Clone returns a deep copy of the config, so per-request overrides never
// leak into the shared base config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.SensitiveAttrs != nil {
		clone.SensitiveAttrs = make([]string, len(c.SensitiveAttrs))
		copy(clone.SensitiveAttrs, c.SensitiveAttrs)
	}
	if c.NumericalFeatures != nil {
		clone.NumericalFeatures = make([]string, len(c.NumericalFeatures))
		copy(clone.NumericalFeatures, c.NumericalFeatures)
	}
	if c.CategoricalFeatures != nil {
		clone.CategoricalFeatures = make([]string, len(c.CategoricalFeatures))
		copy(clone.CategoricalFeatures, c.CategoricalFeatures)
	}
	return &clone
}

// FeatureSchema builds the declared feature schema from the config.
func (c *Config) FeatureSchema() schema.FeatureSchema {
	return schema.FeatureSchema{
		Numerical:   c.NumericalFeatures,
		Categorical: c.CategoricalFeatures,
	}
}

// ThresholdsRawInput holds threshold overrides from the YAML config file.
type ThresholdsRawInput struct {
	PSIMinor        *float64 `mapstructure:"psi_minor"`
	PSIMajor        *float64 `mapstructure:"psi_major"`
	PValue          *float64 `mapstructure:"p_value"`
	DisparateImpact *float64 `mapstructure:"disparate_impact"`
	ParityDiff      *float64 `mapstructure:"parity_diff"`
	EqOddsDiff      *float64 `mapstructure:"eq_odds_diff"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	MinGroupSize   int    `mapstructure:"min-group-size"`
	MaxCombination int    `mapstructure:"max-combination"`
	PSIBins        int    `mapstructure:"psi-bins"`
	SampleSize     int    `mapstructure:"sample-size"`
	TopK           int    `mapstructure:"top-k"`
	Penalty        int    `mapstructure:"penalty"`
	Seed           int64  `mapstructure:"seed"`
	WindowSize     int    `mapstructure:"window"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreConnect   string `mapstructure:"store-connect"`

	// --- Dataset flags shared by the analysis commands ---
	Baseline    string `mapstructure:"baseline"`
	Current     string `mapstructure:"current"`
	Data        string `mapstructure:"data"`
	Model       string `mapstructure:"model"`
	Attrs       string `mapstructure:"attrs"`
	PredCol     string `mapstructure:"pred-col"`
	LabelCol    string `mapstructure:"label-col"`
	Numerical   string `mapstructure:"numerical"`
	Categorical string `mapstructure:"categorical"`

	// --- Threshold overrides from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisOptions(cfg, input); err != nil {
		return err
	}
	if err := validateStoreBackend(cfg, input); err != nil {
		return err
	}
	processThresholds(cfg, input)
	processDatasetInputs(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates the output-related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// validateAnalysisOptions validates the tunable analysis knobs.
func validateAnalysisOptions(cfg *Config, input *ConfigRawInput) error {
	if input.MinGroupSize <= 0 {
		return fmt.Errorf("min-group-size must be greater than 0 (received %d)", input.MinGroupSize)
	}
	cfg.MinGroupSize = input.MinGroupSize

	if input.MaxCombination < 1 || input.MaxCombination > MaxCombinationLimit {
		return fmt.Errorf("max-combination must be between 1 and %d (received %d)", MaxCombinationLimit, input.MaxCombination)
	}
	cfg.MaxCombinationSize = input.MaxCombination

	if input.PSIBins < 2 {
		return fmt.Errorf("psi-bins must be at least 2 (received %d)", input.PSIBins)
	}
	cfg.PSIBins = input.PSIBins

	if input.SampleSize <= 0 {
		return fmt.Errorf("sample-size must be greater than 0 (received %d)", input.SampleSize)
	}
	cfg.SampleSize = input.SampleSize

	if input.TopK <= 0 {
		return fmt.Errorf("top-k must be greater than 0 (received %d)", input.TopK)
	}
	cfg.TopK = input.TopK

	if input.Penalty < 0 || input.Penalty > 100 {
		return fmt.Errorf("penalty must be between 0 and 100 (received %d)", input.Penalty)
	}
	cfg.ScorePenalty = input.Penalty

	if input.WindowSize < 0 {
		return fmt.Errorf("window must be 0 (all) or positive (received %d)", input.WindowSize)
	}
	cfg.WindowSize = input.WindowSize

	cfg.Seed = input.Seed
	return nil
}

// validateStoreBackend validates the observation store configuration.
func validateStoreBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be memory, sqlite, mysql, postgresql", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MemoryBackend, schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
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

// processThresholds merges config-file overrides over the default cutoffs.
func processThresholds(cfg *Config, input *ConfigRawInput) {
	cfg.Thresholds = DefaultThresholds()
	if v := input.Thresholds.PSIMinor; v != nil {
		cfg.Thresholds.PSIMinor = *v
	}
	if v := input.Thresholds.PSIMajor; v != nil {
		cfg.Thresholds.PSIMajor = *v
	}
	if v := input.Thresholds.PValue; v != nil {
		cfg.Thresholds.PValue = *v
	}
	if v := input.Thresholds.DisparateImpact; v != nil {
		cfg.Thresholds.DisparateImpact = *v
	}
	if v := input.Thresholds.ParityDiff; v != nil {
		cfg.Thresholds.ParityDiff = *v
	}
	if v := input.Thresholds.EqOddsDiff; v != nil {
		cfg.Thresholds.EqOddsDiff = *v
	}
}

// processDatasetInputs transfers dataset selection fields, splitting the
// comma-separated list flags.
func processDatasetInputs(cfg *Config, input *ConfigRawInput) {
	cfg.BaselinePath = input.Baseline
	cfg.CurrentPath = input.Current
	cfg.DataPath = input.Data
	cfg.ModelPath = input.Model
	cfg.PredictionColumn = input.PredCol
	cfg.LabelColumn = input.LabelCol
	cfg.SensitiveAttrs = SplitCommaList(input.Attrs)
	cfg.NumericalFeatures = SplitCommaList(input.Numerical)
	cfg.CategoricalFeatures = SplitCommaList(input.Categorical)
}

// SplitCommaList splits a comma-separated flag value, trimming whitespace
// and dropping empty entries.
func SplitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
