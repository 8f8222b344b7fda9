package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // LoadLocation must work on hosts without a zoneinfo database

	"github.com/huangsam/spendchart/schema"
)

// Default values for configuration.
const (
	DefaultWidth             = 800
	DefaultStrokeWidth       = 100.0
	DefaultItemTextSize      = 14.0
	DefaultAnimationDuration = 1000 * time.Millisecond
	DefaultPadding           = 50.0
	DefaultGridLines         = 4
	DefaultLineStrokeWidth   = 6.0
	DefaultCornerRadius      = 40.0
	DefaultFrames            = 30
	DefaultPrecision         = 1
	MaxSurfaceSize           = 8192
	MaxFrames                = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for building and rendering charts.
// This struct is the "final, validated" config.
type Config struct {
	PayloadPath   string
	PayloadFormat string // json or csv, empty = infer from extension

	Width  int // Surface width in pixels
	Height int // Surface height in pixels, 0 = derived per chart

	TextColor         schema.Color
	ItemTextSize      float64
	ItemFontFamily    string // Path to a TrueType font, empty = built-in face
	StrokeWidth       float64
	AnimationDuration time.Duration
	GridColor         schema.Color
	LineStrokeWidth   float64
	CornerRadius      float64
	Padding           float64
	GridLines         int
	CurrencySuffix    string

	Palette  []schema.Color // Empty = built-in palette
	Seed     uint64
	HasSeed  bool // Seed was given, palette order is reproducible
	Location *time.Location

	AmountScale schema.AmountScale
	SortPoints  bool
	Progress    float64 // Reveal progress of still pie renders

	Output     schema.OutputMode
	OutputFile string
	TermWidth  int // Terminal width override (0 = auto-detect)
	Precision  int
	UseColors  bool

	TapX, TapY float64
	Frames     int
	FramesDir  string

	StateBackend   schema.DatabaseBackend
	StateDBConnect string // Please use env var as this is plaintext

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	LogLevel string
	LogJSON  bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PayloadPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format            string   `mapstructure:"format"`
	Width             int      `mapstructure:"width"`
	Height            int      `mapstructure:"height"`
	TextColor         string   `mapstructure:"text-color"`
	ItemTextSize      float64  `mapstructure:"item-text-size"`
	ItemFontFamily    string   `mapstructure:"item-font-family"`
	StrokeWidth       float64  `mapstructure:"stroke-width"`
	AnimationDuration string   `mapstructure:"animation-duration"`
	GridColor         string   `mapstructure:"grid-color"`
	LineStrokeWidth   float64  `mapstructure:"line-stroke-width"`
	CornerRadius      float64  `mapstructure:"corner-radius"`
	Padding           float64  `mapstructure:"padding"`
	GridLines         int      `mapstructure:"grid-lines"`
	CurrencySuffix    string   `mapstructure:"currency-suffix"`
	Palette           []string `mapstructure:"palette"`
	Seed              string   `mapstructure:"seed"`
	Timezone          string   `mapstructure:"timezone"`
	Output            string   `mapstructure:"output"`
	OutputFile        string   `mapstructure:"output-file"`
	TermWidth         int      `mapstructure:"term-width"`
	Precision         int      `mapstructure:"precision"`
	Color             string   `mapstructure:"color"`
	StateBackend      string   `mapstructure:"state-backend"`
	StateDBConnect    string   `mapstructure:"state-db-connect"`
	RunBackend        string   `mapstructure:"run-backend"`
	RunDBConnect      string   `mapstructure:"run-db-connect"`
	LogLevel          string   `mapstructure:"log-level"`
	LogJSON           bool     `mapstructure:"log-json"`

	// --- Fields from lineCmd.Flags() ---
	AmountScale string `mapstructure:"amount-scale"`
	SortPoints  bool   `mapstructure:"sort-points"`

	// --- Fields from pieCmd.Flags() ---
	Progress float64 `mapstructure:"progress"`

	// --- Fields from tapCmd.Flags() ---
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`

	// --- Fields from animateCmd.Flags() ---
	Frames    int    `mapstructure:"frames"`
	FramesDir string `mapstructure:"frames-dir"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Palette != nil {
		clone.Palette = make([]schema.Color, len(c.Palette))
		copy(clone.Palette, c.Palette)
	}
	return &clone
}

// PieSize returns the surface size of the pie chart. Without a height the pie is square.
func (c *Config) PieSize() (float64, float64) {
	if c.Height <= 0 {
		return float64(c.Width), float64(c.Width)
	}
	return float64(c.Width), float64(c.Height)
}

// LineSize returns the surface size of the line chart. Without a height it is half as tall as wide.
func (c *Config) LineSize() (float64, float64) {
	if c.Height <= 0 {
		return float64(c.Width), float64(c.Width) / 2
	}
	return float64(c.Width), float64(c.Height)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processStyle(cfg, input); err != nil {
		return err
	}
	if err := processPalette(cfg, input); err != nil {
		return err
	}
	if err := processLocation(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
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

// validateBackendConfigs validates state and run backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- State Backend Validation ---
	cfg.StateBackend = schema.DatabaseBackend(strings.ToLower(input.StateBackend))
	if cfg.StateBackend == "" {
		cfg.StateBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StateBackend]; !ok {
		return fmt.Errorf("invalid state backend '%s'. must be sqlite, mysql, postgresql, none", input.StateBackend)
	}
	cfg.StateDBConnect = input.StateDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StateBackend, cfg.StateDBConnect); err != nil {
		return fmt.Errorf("state store: %w", err)
	}

	// --- Run Backend Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if cfg.RunBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("run store: %w", err)
	}

	// SQLite stores must not share a file, so resolve default paths before comparing
	if cfg.StateBackend == schema.SQLiteBackend && cfg.RunBackend == schema.SQLiteBackend {
		statePath := cfg.StateDBConnect
		if statePath == "" {
			statePath = GetStateDBFilePath()
		}
		runPath := cfg.RunDBConnect
		if runPath == "" {
			runPath = GetRunDBFilePath()
		}
		if statePath == runPath {
			return fmt.Errorf("state and run storage must use different SQLite database files. Both resolve to %q", statePath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the size, output and flag fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PayloadPath = input.PayloadPathStr
	cfg.OutputFile = input.OutputFile
	cfg.TermWidth = input.TermWidth
	cfg.SortPoints = input.SortPoints
	cfg.TapX, cfg.TapY = input.X, input.Y
	cfg.FramesDir = input.FramesDir
	cfg.LogJSON = input.LogJSON
	cfg.LogLevel = strings.ToLower(input.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Payload Format ---
	cfg.PayloadFormat = strings.ToLower(input.Format)
	if cfg.PayloadFormat != "" && cfg.PayloadFormat != "json" && cfg.PayloadFormat != "csv" {
		return fmt.Errorf("invalid payload format '%s'. must be json or csv", input.Format)
	}

	// --- 2. Surface Size ---
	if input.Width <= 0 || input.Width > MaxSurfaceSize {
		return fmt.Errorf("width must be greater than 0 and cannot exceed %d (received %d)", MaxSurfaceSize, input.Width)
	}
	if input.Height < 0 || input.Height > MaxSurfaceSize {
		return fmt.Errorf("height must be between 0 and %d (received %d)", MaxSurfaceSize, input.Height)
	}
	cfg.Width, cfg.Height = input.Width, input.Height

	// --- 3. Precision and Output ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, png", input.Output)
	}
	if cfg.Output == schema.PNGOut && cfg.OutputFile == "" {
		return fmt.Errorf("png output requires --output-file")
	}

	// --- 4. Chart Options ---
	cfg.AmountScale = schema.AmountScale(strings.ToLower(input.AmountScale))
	if cfg.AmountScale == "" {
		cfg.AmountScale = schema.CategoryTotalScale
	}
	if _, ok := schema.ValidAmountScales[cfg.AmountScale]; !ok {
		return fmt.Errorf("invalid amount scale '%s'. must be category-total, record-max", input.AmountScale)
	}

	if input.Progress < 0 || input.Progress > 1 {
		return fmt.Errorf("progress must be between 0 and 1 (received %g)", input.Progress)
	}
	cfg.Progress = input.Progress

	if input.Frames < 1 || input.Frames > MaxFrames {
		return fmt.Errorf("frames must be between 1 and %d (received %d)", MaxFrames, input.Frames)
	}
	cfg.Frames = input.Frames

	// --- 5. Seed ---
	if input.Seed != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(input.Seed), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed '%s': %w", input.Seed, err)
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	return nil
}

// processStyle validates the chart styling options.
func processStyle(cfg *Config, input *ConfigRawInput) error {
	var err error
	if cfg.TextColor, err = parseColorOr(input.TextColor, schema.Black); err != nil {
		return fmt.Errorf("invalid text-color: %w", err)
	}
	if cfg.GridColor, err = parseColorOr(input.GridColor, schema.Gray); err != nil {
		return fmt.Errorf("invalid grid-color: %w", err)
	}

	if input.ItemTextSize <= 0 {
		return fmt.Errorf("item-text-size must be greater than 0 (received %g)", input.ItemTextSize)
	}
	cfg.ItemTextSize = input.ItemTextSize
	cfg.ItemFontFamily = input.ItemFontFamily

	// Clamping to the radius happens at measure time, when the radius is known
	if input.StrokeWidth < 0 {
		return fmt.Errorf("stroke-width cannot be negative (received %g)", input.StrokeWidth)
	}
	cfg.StrokeWidth = input.StrokeWidth

	if input.LineStrokeWidth <= 0 {
		return fmt.Errorf("line-stroke-width must be greater than 0 (received %g)", input.LineStrokeWidth)
	}
	cfg.LineStrokeWidth = input.LineStrokeWidth

	if input.CornerRadius < 0 {
		return fmt.Errorf("corner-radius cannot be negative (received %g)", input.CornerRadius)
	}
	cfg.CornerRadius = input.CornerRadius

	if input.Padding < 0 || input.Padding*2 >= float64(cfg.Width) {
		return fmt.Errorf("padding must be non-negative and less than half the width (received %g)", input.Padding)
	}
	cfg.Padding = input.Padding

	if input.GridLines < 1 {
		return fmt.Errorf("grid-lines must be at least 1 (received %d)", input.GridLines)
	}
	cfg.GridLines = input.GridLines
	cfg.CurrencySuffix = input.CurrencySuffix

	cfg.AnimationDuration = DefaultAnimationDuration
	if input.AnimationDuration != "" {
		d, err := parseDuration(input.AnimationDuration)
		if err != nil {
			return fmt.Errorf("invalid animation-duration: %w", err)
		}
		cfg.AnimationDuration = d
	}
	return nil
}

// processPalette parses the configured palette; an empty list keeps the built-in one.
func processPalette(cfg *Config, input *ConfigRawInput) error {
	cfg.Palette = nil
	for _, raw := range input.Palette {
		for part := range strings.SplitSeq(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			c, err := schema.ParseColor(part)
			if err != nil {
				return fmt.Errorf("invalid palette: %w", err)
			}
			cfg.Palette = append(cfg.Palette, c)
		}
	}
	return nil
}

// processLocation resolves the time zone used for day-of-month bucketing.
func processLocation(cfg *Config, input *ConfigRawInput) error {
	switch strings.ToLower(input.Timezone) {
	case "", "utc":
		cfg.Location = time.UTC
	case "local":
		cfg.Location = time.Local
	default:
		loc, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
		}
		cfg.Location = loc
	}
	return nil
}

func parseColorOr(s string, fallback schema.Color) (schema.Color, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return schema.ParseColor(s)
}

// parseDuration accepts Go durations ("1.5s", "800ms") or a bare number of milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("duration cannot be negative (received %d)", ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration cannot be negative (received %s)", s)
	}
	return d, nil
}
